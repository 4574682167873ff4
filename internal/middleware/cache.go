package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/room-reservation/internal/config"
)

// bodyRecorder tees the response into a buffer while streaming it to the
// client, so a successful response can be stored after the handler returns.
// Bodies past limit are streamed but not recorded.
type bodyRecorder struct {
	http.ResponseWriter
	status  int
	buf     bytes.Buffer
	written int64
	limit   int64
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if r.limit <= 0 {
		r.buf.Write(b)
	} else if remain := r.limit - r.written; remain > 0 {
		if int64(len(b)) > remain {
			r.buf.Write(b[:remain])
		} else {
			r.buf.Write(b)
		}
	}
	r.written += int64(len(b))
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) recordable() bool {
	return r.status == http.StatusOK && (r.limit <= 0 || r.written <= r.limit)
}

// responseKey hashes the request identity picked by KeyStrategy into a
// fixed-width redis key under the configured prefix.
func responseKey(cfg config.CacheConfig, c echo.Context) string {
	req := c.Request()

	var tail string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		tail = c.Path()
	case "method_route":
		tail = req.Method + ":" + c.Path()
	case "method_route_query":
		tail = req.Method + ":" + c.Path() + "?" + req.URL.RawQuery
	default:
		tail = c.Path() + "?" + req.URL.RawQuery
	}

	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// Stored payload layout: status (4 bytes), header length (4 bytes), header
// JSON, then the raw body. Keeping headers means replays are byte-identical
// to the original response.
func encodeResponse(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodeResponse(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

func replayResponse(c echo.Context, status int, header http.Header, body []byte) error {
	for k, vals := range header {
		// Echo recomputes Content-Length for the replayed body.
		if strings.EqualFold(k, "Content-Length") {
			continue
		}
		for _, v := range vals {
			c.Response().Header().Add(k, v)
		}
	}
	c.Response().Header().Set("X-Cache", "HIT")
	c.Response().WriteHeader(status)
	if len(body) > 0 {
		_, _ = c.Response().Write(body)
	}
	return nil
}

// NewRedisCache caches full responses for the configured methods in redis.
// It is wired onto room catalog routes only; reservation listings use the
// scope cache with explicit invalidation instead.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			key := responseKey(cfg, c)
			if bs, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
				if status, hdr, body, ok := decodeResponse(bs); ok {
					return replayResponse(c, status, hdr, body)
				}
			}

			rec := &bodyRecorder{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if rec.recordable() {
				hdr := make(http.Header, len(c.Response().Header()))
				for k, vals := range c.Response().Header() {
					hdr[k] = append([]string(nil), vals...)
				}
				if payload, err := encodeResponse(rec.status, hdr, rec.buf.Bytes()); err == nil {
					_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}
