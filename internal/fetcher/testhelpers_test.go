package fetcher

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePDF is a body that looks like a PDF to callers that only sniff the header.
const fakePDF = "%PDF-1.4\nOrder Number: OD1\n%%EOF\n"

// miniFTPServer speaks just enough FTP for Download and DownloadToFile.
type miniFTPServer struct {
	listener net.Listener
	files    map[string]string

	mu     sync.Mutex
	logins []string
	wg     sync.WaitGroup
}

func newMiniFTPServer(t *testing.T, files map[string]string) *miniFTPServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &miniFTPServer{listener: ln, files: files}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(s.close)
	return s
}

func (s *miniFTPServer) addr() string {
	return s.listener.Addr().String()
}

func (s *miniFTPServer) users() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.logins...)
}

func (s *miniFTPServer) close() {
	s.listener.Close() //nolint:errcheck
	s.wg.Wait()
}

func (s *miniFTPServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *miniFTPServer) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close() //nolint:errcheck
	conn.SetDeadline(time.Now().Add(10 * time.Second)) //nolint:errcheck

	w := bufio.NewWriter(conn)
	r := bufio.NewReader(conn)
	reply := func(format string, args ...any) {
		_, _ = fmt.Fprintf(w, format+"\r\n", args...)
		_ = w.Flush()
	}

	reply("220 ready")

	var data net.Listener
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

		switch strings.ToUpper(cmd) {
		case "USER":
			s.mu.Lock()
			s.logins = append(s.logins, arg)
			s.mu.Unlock()
			reply("331 password please")
		case "PASS":
			reply("230 logged in")
		case "FEAT":
			fmt.Fprintf(w, "211-Features:\r\n UTF8\r\n") //nolint:errcheck
			reply("211 End")
		case "TYPE", "OPTS":
			reply("200 OK")
		case "EPSV":
			data, err = net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				reply("425 cannot open data connection")
				continue
			}
			reply("229 Entering Extended Passive Mode (|||%d|)", data.Addr().(*net.TCPAddr).Port)
		case "PASV":
			data, err = net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				reply("425 cannot open data connection")
				continue
			}
			port := data.Addr().(*net.TCPAddr).Port
			reply("227 Entering Passive Mode (127,0,0,1,%d,%d)", port/256, port%256)
		case "RETR":
			if data == nil {
				reply("425 use PASV first")
				continue
			}
			content, ok := s.files[arg]
			if !ok {
				data.Close() //nolint:errcheck
				data = nil
				reply("550 file not found")
				continue
			}
			reply("150 opening data connection")
			dc, err := data.Accept()
			if err != nil {
				reply("425 cannot open data connection")
				continue
			}
			_, _ = io.WriteString(dc, content)
			_ = dc.Close()
			_ = data.Close()
			data = nil
			reply("226 transfer complete")
		case "QUIT":
			reply("221 bye")
			return
		default:
			reply("502 not implemented")
		}
	}
}
