// Package remote is the read-only client backend: it resolves individuals
// through a request/reply round trip to a storage server instead of a local
// database. Only GetIndividual is supported over the wire; every other
// operation reports an explicit Error.
package remote

import (
	"bytes"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/req"
	_ "go.nanomsg.org/mangos/v3/transport/inproc"
	_ "go.nanomsg.org/mangos/v3/transport/tcp"

	"vstore/internal/individual"
	"vstore/internal/logging"
	"vstore/internal/storage"
	"vstore/internal/wire"
)

var rlog = logging.For("remote")

// Client is the remote read-only backend. It dials lazily on first use and
// caches readiness; a failed round trip drops readiness so the next call
// re-dials.
type Client struct {
	sock  mangos.Socket
	addr  string
	ready bool
}

// New returns a client for the given address (any mangos transport URL,
// e.g. tcp://host:port). No connection is attempted until the first call.
func New(addr string) *Client {
	return &Client{addr: addr}
}

// Ready reports whether the last dial or round trip succeeded.
func (c *Client) Ready() bool { return c.ready }

func (c *Client) connect() bool {
	if c.sock == nil {
		sock, err := req.NewSocket()
		if err != nil {
			rlog.Error("failed to create req socket", "err", err)
			return false
		}
		c.sock = sock
	}
	if err := c.sock.Dial(c.addr); err != nil {
		rlog.Error("failed to connect to storage server", "addr", c.addr, "err", err)
		c.ready = false
		return false
	}
	rlog.Info("connected to storage server", "addr", c.addr)
	c.ready = true
	return true
}

// GetIndividual sends the namespace-tagged key and interprets the reply: the
// literal [] is NotFound; anything else is a header-prefixed payload handed
// to the parser.
func (c *Client) GetIndividual(id storage.ID, uri string, out *individual.Individual) storage.Result[storage.Unit] {
	if !c.ready && !c.connect() {
		rlog.Error("storage server not ready", "addr", c.addr)
		return storage.NotReady[storage.Unit]()
	}

	if err := c.sock.Send(wire.Request(id, uri)); err != nil {
		rlog.Error("failed to send to storage server", "addr", c.addr, "err", err)
		c.ready = false
		return storage.NotReady[storage.Unit]()
	}

	data, err := c.sock.Recv()
	if err != nil {
		rlog.Error("failed to receive from storage server", "addr", c.addr, "err", err)
		c.ready = false
		return storage.NotReady[storage.Unit]()
	}

	if bytes.Equal(data, wire.NotFoundReply) {
		return storage.NotFound[storage.Unit]()
	}
	if len(data) < wire.HeaderLen {
		rlog.Error("short reply from storage server", "addr", c.addr, "len", len(data))
		return storage.Error[storage.Unit]("short reply from storage server")
	}

	out.SetRaw(data[wire.HeaderLen:])
	if err := individual.Parse(out); err != nil {
		rlog.Error("failed to parse individual", "uri", uri, "len", out.RawLen())
		return storage.Unprocessable[storage.Unit]()
	}
	return storage.OkUnit()
}

func (c *Client) GetValue(storage.ID, string) storage.Result[string] {
	return storage.Error[string]("remote storage does not support get_value")
}

func (c *Client) GetRawValue(storage.ID, string) storage.Result[[]byte] {
	return storage.Error[[]byte]("remote storage does not support get_raw_value")
}

func (c *Client) PutValue(storage.ID, string, string) storage.Result[storage.Unit] {
	return storage.Error[storage.Unit]("remote storage is read-only")
}

func (c *Client) PutRawValue(storage.ID, string, []byte) storage.Result[storage.Unit] {
	return storage.Error[storage.Unit]("remote storage is read-only")
}

func (c *Client) RemoveValue(storage.ID, string) storage.Result[storage.Unit] {
	return storage.Error[storage.Unit]("remote storage is read-only")
}

func (c *Client) Count(storage.ID) storage.Result[int] {
	return storage.Error[int]("remote storage does not support count")
}

// Close releases the socket. The client can be reused; the next call
// reconnects.
func (c *Client) Close() error {
	c.ready = false
	if c.sock == nil {
		return nil
	}
	err := c.sock.Close()
	c.sock = nil
	return err
}
