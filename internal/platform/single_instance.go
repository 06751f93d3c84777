package platform

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net"
	"sync"
	"time"

	"midnightclock/internal/logger"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	activateCommand = "show\n"
	ioTimeout       = 2 * time.Second
)

// InstanceGuard holds the single-instance lock and answers activation
// requests from later launches.
type InstanceGuard struct {
	listener net.Listener
	address  string
	done     sync.WaitGroup
}

// AcquireSingleInstance binds a deterministic localhost port derived from
// appName. onActivate runs whenever another launch calls ActivateRunning.
func AcquireSingleInstance(ctx context.Context, appName string, onActivate func()) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", address, ErrAlreadyRunning)
	}

	guard := &InstanceGuard{listener: listener, address: address}
	guard.done.Add(1)
	go guard.serve(ctx, onActivate)
	return guard, nil
}

// ActivateRunning asks the instance holding the lock to show itself.
func ActivateRunning(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), ioTimeout)
	if err != nil {
		return fmt.Errorf("dial running instance: %w", err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(ioTimeout))
	if _, err := io.WriteString(conn, activateCommand); err != nil {
		return fmt.Errorf("send activation: %w", err)
	}
	return nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.done.Wait()
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) serve(ctx context.Context, onActivate func()) {
	defer guard.done.Done()
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				logger.WarnKV(ctx, "single instance listener stopped", "error", err)
			}
			return
		}
		guard.handle(ctx, conn, onActivate)
	}
}

func (guard *InstanceGuard) handle(ctx context.Context, conn net.Conn, onActivate func()) {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(ioTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		logger.DebugKV(ctx, "activation request dropped", "remote", conn.RemoteAddr().String(), "error", err)
		return
	}
	if line != activateCommand {
		logger.DebugKV(ctx, "unknown activation request", "request", line)
		return
	}
	logger.DebugKV(ctx, "activation requested")
	if onActivate != nil {
		onActivate()
	}
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
