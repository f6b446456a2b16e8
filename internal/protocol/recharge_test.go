package protocol_test

import (
	"errors"
	"net"
	"testing"
	"time"

	proto "github.com/rifett/tcprobots/internal/protocol"
)

func TestChannel_RechargeInterludeIsTransparent(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	ch := proto.NewChannel(srv, srv)
	done := make(chan struct{})
	var got string
	var gotErr error
	go func() {
		got, gotErr = ch.Read(proto.CapMovementConfirm)
		close(done)
	}()

	write(t, client, "RECHARGING")
	write(t, client, "FULL POWER")
	write(t, client, "OK 3 -2")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for channel read")
	}
	if gotErr != nil {
		t.Fatalf("err=%v", gotErr)
	}
	if got != "OK 3 -2" {
		t.Fatalf("got %q want %q", got, "OK 3 -2")
	}
	if ch.LastResponse != "OK 3 -2" {
		t.Fatalf("LastResponse=%q want %q", ch.LastResponse, "OK 3 -2")
	}
}

func TestChannel_NonFullPowerAfterRechargingIsLogicError(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	ch := proto.NewChannel(srv, srv)
	done := make(chan struct{})
	var gotErr error
	go func() {
		_, gotErr = ch.Read(proto.CapMovementConfirm)
		close(done)
	}()

	write(t, client, "RECHARGING")
	write(t, client, "OK 1 2")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for channel read")
	}
	if !errors.Is(gotErr, proto.ErrLogic) {
		t.Fatalf("err=%v want ErrLogic", gotErr)
	}
}

func write(t *testing.T, conn net.Conn, msg string) {
	t.Helper()
	if _, err := conn.Write(append([]byte(msg), 0x07, 0x08)); err != nil {
		t.Fatalf("write %q: %v", msg, err)
	}
}
