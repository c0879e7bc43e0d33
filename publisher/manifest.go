// Package publisher holds the Host publishers: manifest rendering and Azure
// diff and deploy.
package publisher

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/lib/ctxlog"
	"github.com/santiago-labs/apphost/lib/manifest"
	"github.com/santiago-labs/apphost/resource"
)

type Uploader interface {
	Put(ctx context.Context, ext string, body []byte) (string, error)
}

type Manifest struct {
	Format string
	// Out receives the manifest when OutputPath is empty.
	Out        io.Writer
	OutputPath string
	// Uploader is optional.
	Uploader Uploader
}

func (m *Manifest) Name() string {
	return "manifest"
}

func (m *Manifest) Publish(ctx context.Context, decls []resource.Declaration) error {
	logger := ctxlog.FromContext(ctx)

	mf, err := manifest.Build(decls)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := mf.Encode(&buf, m.Format); err != nil {
		return err
	}

	if m.OutputPath != "" {
		if err := os.WriteFile(m.OutputPath, buf.Bytes(), 0644); err != nil {
			return oops.Wrapf(err, "write manifest to %s", m.OutputPath)
		}
		logger.Info("wrote manifest", "path", m.OutputPath, "resources", len(decls))
	} else {
		out := m.Out
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return oops.Wrapf(err, "write manifest")
		}
	}

	if m.Uploader != nil {
		uri, err := m.Uploader.Put(ctx, manifest.Extension(m.Format), buf.Bytes())
		if err != nil {
			return err
		}
		logger.Info("uploaded manifest", "uri", uri)
	}

	return nil
}
