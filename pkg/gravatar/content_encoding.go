package gravatar

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

const acceptEncoding = "br, gzip, zstd, deflate"

// decodeContent undoes a Content-Encoding header value. Stacked encodings are
// removed in reverse order of application.
func decodeContent(contentEncoding string, body []byte) ([]byte, error) {
	encodings := strings.Split(contentEncoding, ",")
	decoded := body
	for index := len(encodings) - 1; index >= 0; index-- {
		encoding := strings.ToLower(strings.TrimSpace(encodings[index]))
		var err error
		switch encoding {
		case "", "identity":
			continue
		case "br":
			decoded, err = io.ReadAll(brotli.NewReader(bytes.NewReader(decoded)))
		case "gzip", "x-gzip":
			decoded, err = gunzip(decoded)
		case "zstd":
			decoded, err = unzstd(decoded)
		case "deflate":
			decoded, err = inflate(decoded)
		default:
			return nil, fmt.Errorf("unsupported content encoding %q", encoding)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s response body: %w", encoding, err)
		}
	}
	return decoded, nil
}

func gunzip(body []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func unzstd(body []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer decoder.Close()
	return io.ReadAll(decoder)
}

// inflate accepts zlib wrapped data and falls back to raw deflate, which some
// servers send under the same name.
func inflate(body []byte) ([]byte, error) {
	if reader, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		defer reader.Close()
		if decoded, readErr := io.ReadAll(reader); readErr == nil {
			return decoded, nil
		}
	}
	reader := flate.NewReader(bytes.NewReader(body))
	defer reader.Close()
	return io.ReadAll(reader)
}
