package timer

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// DefaultLiveSplitAddress is where LiveSplit Server listens unless reconfigured
const DefaultLiveSplitAddress = "localhost:16834"

var _ Timer = (*LiveSplit)(nil)

// LiveSplit drives a LiveSplit Server over its line protocol. Commands are
// terminated with CRLF; only queries get a reply. The connection is opened
// lazily and re-dialed after any failure.
type LiveSplit struct {
	addr    string
	timeout time.Duration
	log     *logger.Logger

	mu   sync.Mutex
	conn net.Conn
	rd   *bufio.Reader
}

func NewLiveSplit(addr string, timeout time.Duration) *LiveSplit {
	if addr == "" {
		addr = DefaultLiveSplitAddress
	}
	if timeout <= 0 {
		timeout = time.Second
	}
	return &LiveSplit{
		addr:    addr,
		timeout: timeout,
		log:     logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "livesplit")),
	}
}

func (l *LiveSplit) Phase() (Phase, error) {
	reply, err := l.do("getcurrenttimerphase", true)
	if err != nil {
		return NotRunning, err
	}
	return ParsePhase(reply)
}

func (l *LiveSplit) Start() error {
	_, err := l.do("starttimer", false)
	return err
}

func (l *LiveSplit) Split() error {
	_, err := l.do("split", false)
	return err
}

func (l *LiveSplit) Reset() error {
	_, err := l.do("reset", false)
	return err
}

// Close drops the connection; the next command dials again
func (l *LiveSplit) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropLocked()
}

func (l *LiveSplit) do(command string, reply bool) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn == nil {
		conn, err := net.DialTimeout("tcp", l.addr, l.timeout)
		if err != nil {
			return "", fmt.Errorf("connect to %s: %w", l.addr, err)
		}
		l.conn = conn
		l.rd = bufio.NewReader(conn)
		l.log.Infoln("Connected to", l.addr)
	}

	if err := l.conn.SetDeadline(time.Now().Add(l.timeout)); err != nil {
		l.dropLocked()
		return "", fmt.Errorf("%s: %w", command, err)
	}

	if _, err := l.conn.Write([]byte(command + "\r\n")); err != nil {
		l.dropLocked()
		return "", fmt.Errorf("%s: %w", command, err)
	}

	if !reply {
		return "", nil
	}

	line, err := l.rd.ReadString('\n')
	if err != nil {
		l.dropLocked()
		return "", fmt.Errorf("%s: %w", command, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (l *LiveSplit) dropLocked() error {
	if l.conn == nil {
		return nil
	}
	err := l.conn.Close()
	l.conn = nil
	l.rd = nil
	l.log.Debugln("Disconnected from", l.addr)
	return err
}
