// Package ianadist fetches tzdata releases from the IANA data server
// (https://www.iana.org/time-zones) and unpacks their source files.
//
// Downloads are conditional: pass the ETag returned by the previous call and
// nothing is transferred while the release is unchanged.
package ianadist

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/ngrash/go-tzclock/tzdata"
)

const (
	baseURL        = "https://data.iana.org/time-zones/"
	latestDataPath = "tzdata-latest.tar.gz"

	// dataFileMagicHeader starts every source file in a release.
	dataFileMagicHeader = "# tzdb data for"
	versionFilename     = "version"
)

// SkippedDataFiles are data files that Release.Parse ignores. backzone redefines zones
// of the main files with pre-1970 history and would yield duplicate names.
var SkippedDataFiles = []string{"backzone"}

// TZDataFiles maps source file names ("europe", "northamerica", ...) to their contents.
// Every value starts with "# tzdb data for".
type TZDataFiles map[string][]byte

// Names returns the file names in lexical order.
func (f TZDataFiles) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Release is an unpacked tzdata release.
type Release struct {
	Version   string // e.g. "2024b"
	DataFiles TZDataFiles
}

// Parse parses the data files in lexical order and merges them.
// Errors are prefixed with the file name and, if known, the line.
func (r *Release) Parse() (tzdata.File, error) {
	var merged tzdata.File
	for _, name := range r.DataFiles.Names() {
		if slices.Contains(SkippedDataFiles, name) {
			continue
		}
		f, err := tzdata.Parse(bytes.NewReader(r.DataFiles[name]))
		if err != nil {
			if line, ok := tzdata.Line(err); ok {
				return tzdata.File{}, fmt.Errorf("%s:%d: %w", name, line, err)
			}
			return tzdata.File{}, fmt.Errorf("%s: %w", name, err)
		}
		merged.Merge(f)
	}
	return merged, nil
}

// ReadArchive unpacks a gzip-compressed tar archive as published under
// https://data.iana.org/time-zones/releases/. Files other than the version
// file and the tzdata sources are skipped.
func ReadArchive(r io.Reader) (*Release, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read gzip: %w", err)
	}
	tr := tar.NewReader(zr)

	release := &Release{DataFiles: make(TZDataFiles)}
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if hdr.Name == versionFilename {
			b, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("read version file: %w", err)
			}
			if release.Version = strings.TrimSpace(string(b)); release.Version == "" {
				return nil, errors.New("empty version file")
			}
			continue
		}

		data, ok, err := readDataFile(tr, hdr)
		if err != nil {
			return nil, err
		}
		if ok {
			release.DataFiles[hdr.Name] = data
		}
	}

	switch {
	case len(release.DataFiles) == 0:
		return nil, errors.New("no data files found")
	case release.Version == "":
		return nil, errors.New("no version found")
	}
	return release, nil
}

// readDataFile reads the current archive member if it starts with the magic header.
// Only the header is consumed from other members.
func readDataFile(tr *tar.Reader, hdr *tar.Header) ([]byte, bool, error) {
	n := len(dataFileMagicHeader)
	if hdr.Size < int64(n) {
		return nil, false, nil
	}
	data := make([]byte, hdr.Size)
	if _, err := io.ReadFull(tr, data[:n]); err != nil {
		return nil, false, fmt.Errorf("read %s: %w", hdr.Name, err)
	}
	if string(data[:n]) != dataFileMagicHeader {
		return nil, false, nil
	}
	if _, err := io.ReadFull(tr, data[n:]); err != nil {
		return nil, false, fmt.Errorf("read %s: %w", hdr.Name, err)
	}
	return data, true, nil
}

// DefaultClient is used by Latest and Download.
var DefaultClient = &Client{}

// Client downloads from the IANA data server. The zero value is ready to use.
type Client struct {
	// HTTPClient defaults to http.DefaultClient. Deadlines come from the context
	// passed to Latest and Download.
	HTTPClient *http.Client

	// Logger receives a debug line per request. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Latest calls DefaultClient.Latest.
func Latest(ctx context.Context, etag string) (*Release, string, error) {
	return DefaultClient.Latest(ctx, etag)
}

// Latest downloads and unpacks the newest release.
//
// If etag still matches, Latest returns a nil Release, the same etag and no error.
// On error the returned etag is empty.
func (c *Client) Latest(ctx context.Context, etag string) (*Release, string, error) {
	body, newEtag, err := c.Download(ctx, latestDataPath, etag)
	if err != nil {
		return nil, "", err
	}
	if body == nil {
		return nil, etag, nil
	}
	defer drain(body)

	release, err := ReadArchive(body)
	if err != nil {
		return nil, "", err
	}
	return release, newEtag, nil
}

// Download calls DefaultClient.Download.
func Download(ctx context.Context, path, etag string) (io.ReadCloser, string, error) {
	return DefaultClient.Download(ctx, path, etag)
}

// Download fetches path relative to the data server root with If-None-Match set to
// etag, if not empty.
//
// On 200 OK it returns the response body, which the caller must read and close, and
// the new ETag. On 304 Not Modified it returns a nil body and etag unchanged. Any
// other status is an error.
func (c *Client) Download(ctx context.Context, path, etag string) (io.ReadCloser, string, error) {
	u, err := url.JoinPath(baseURL, path)
	if err != nil {
		return nil, "", fmt.Errorf("join URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request for %q: %w", u, err)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("GET %q: %w", u, err)
	}
	c.logger().Debug("downloaded", "url", u, "status", resp.StatusCode, "etag", resp.Header.Get("etag"))

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, resp.Header.Get("etag"), nil
	case http.StatusNotModified:
		drain(resp.Body)
		return nil, etag, nil
	default:
		drain(resp.Body)
		return nil, "", fmt.Errorf("response for %q: unexpected status: %s", u, resp.Status)
	}
}

// drain reads rc to the end and closes it so the connection can be reused.
func drain(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
