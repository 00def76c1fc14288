// Package sftp serves word lists from a remote host over SFTP.
package sftp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/gobeaver/cipherkit/corpus"
)

func init() {
	corpus.RegisterDriver("sftp", func(cfg corpus.Config) (corpus.Source, error) {
		return Dial(context.Background(), cfg)
	})
}

// dialTimeout bounds the TCP connect and SSH handshake.
const dialTimeout = 10 * time.Second

// Adapter provides an SFTP implementation of corpus.Source
type Adapter struct {
	conn   *ssh.Client
	client *sftp.Client
	root   string
}

// Dial connects to the configured host and checks its key against the known_hosts
// file. Use NewWithClient to bring a connection with different host key handling.
func Dial(ctx context.Context, cfg corpus.Config) (*Adapter, error) {
	if cfg.SFTPHost == "" || cfg.SFTPUser == "" {
		return nil, fmt.Errorf("%w: SFTP host and user are required", corpus.ErrInvalidConfig)
	}
	if cfg.SFTPKnownHostsFile == "" {
		return nil, fmt.Errorf("%w: SFTP known hosts file is required", corpus.ErrInvalidConfig)
	}

	hostKeys, err := knownhosts.New(cfg.SFTPKnownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read known hosts: %w", err)
	}

	auth, err := authMethods(cfg)
	if err != nil {
		return nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.SFTPUser,
		Auth:            auth,
		HostKeyCallback: hostKeys,
		Timeout:         dialTimeout,
	}

	addr := net.JoinHostPort(cfg.SFTPHost, strconv.Itoa(cfg.SFTPPort))
	var d net.Dialer
	d.Timeout = dialTimeout
	rawConn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(rawConn, addr, sshCfg)
	if err != nil {
		rawConn.Close()
		return nil, fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	conn := ssh.NewClient(sshConn, chans, reqs)

	return NewWithClient(conn, cfg.SFTPBasePath)
}

// NewWithClient opens an SFTP session over an established SSH connection. The adapter
// owns conn and closes it on Close.
func NewWithClient(conn *ssh.Client, root string) (*Adapter, error) {
	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to start sftp session: %w", err)
	}
	return &Adapter{conn: conn, client: client, root: root}, nil
}

// Open implements corpus.Source
func (a *Adapter) Open(ctx context.Context, filePath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := a.client.Open(a.path(filePath))
	if err != nil {
		return nil, mapError("open", filePath, err)
	}
	return f, nil
}

// Exists implements corpus.Source
func (a *Adapter) Exists(ctx context.Context, filePath string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	info, err := a.client.Stat(a.path(filePath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, mapError("exists", filePath, err)
	}
	return !info.IsDir(), nil
}

// Close implements corpus.Source
func (a *Adapter) Close() error {
	return errors.Join(a.client.Close(), a.conn.Close())
}

func (a *Adapter) path(filePath string) string {
	return path.Join(a.root, path.Clean("/"+filePath))
}

func authMethods(cfg corpus.Config) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if cfg.SFTPKeyFile != "" {
		pem, err := os.ReadFile(cfg.SFTPKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read SFTP key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SFTP key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.SFTPPassword != "" {
		methods = append(methods, ssh.Password(cfg.SFTPPassword))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: SFTP needs a key file or password", corpus.ErrInvalidConfig)
	}
	return methods, nil
}

func mapError(op, filePath string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &corpus.PathError{Op: op, Path: filePath, Err: corpus.ErrNotExist}
	}
	return &corpus.PathError{Op: op, Path: filePath, Err: err}
}
