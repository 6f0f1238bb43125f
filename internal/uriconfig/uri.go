// Package uriconfig implements the URI/Config resolver of spec.md §4.1: URI
// parsing into a normalized record, environment-variable interpolation, and
// required-variable validation. It is grounded on the original Python
// implementation's engine/utils.py (parse_uri) and engine/connector.py
// (_parse_uri_to_config), generalized to the long/short grammar of spec.md
// §4.1/§6.
package uriconfig

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
)

// Record is the normalized output of parsing a URI or accepting a config map:
// {scheme, netloc?, host?, port?, username?, password?, path, query-options}.
type Record struct {
	Scheme   string
	Netloc   string
	Host     string
	Port     int
	Username string
	Password string
	Path     string
	// Options holds query values; a key with a single occurrence collapses
	// to a scalar string, repeated keys become a []string.
	Options map[string]any
}

// Option returns a single query option as a scalar string, following any
// []string collapse rule in reverse (first element wins).
func (r Record) Option(key string) (string, bool) {
	v, ok := r.Options[key]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case []string:
		if len(t) == 0 {
			return "", false
		}
		return t[0], true
	default:
		return fmt.Sprintf("%v", t), true
	}
}

// Parse parses a URI string in either the long form
// scheme://[user[:secret]@]host[:port][/path][?k=v&...] or the short form
// scheme:opaque-path (e.g. "timer:5s", "log:"). Malformed URIs produce a
// CodeConfiguration DomainError.
func Parse(raw string) (Record, error) {
	idx := strings.Index(raw, "://")
	if idx >= 0 {
		return parseLong(raw)
	}

	colon := strings.Index(raw, ":")
	if colon < 0 {
		return Record{}, dcerrors.Configuration(fmt.Sprintf("invalid URI %q: missing scheme", raw), nil)
	}
	scheme := raw[:colon]
	if scheme == "" {
		return Record{}, dcerrors.Configuration(fmt.Sprintf("invalid URI %q: empty scheme", raw), nil)
	}
	path := raw[colon+1:]
	return Record{Scheme: strings.ToLower(scheme), Path: path, Options: map[string]any{}}, nil
}

func parseLong(raw string) (Record, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Record{}, dcerrors.Configuration(fmt.Sprintf("invalid URI %q", raw), err)
	}
	if u.Scheme == "" {
		return Record{}, dcerrors.Configuration(fmt.Sprintf("invalid URI %q: empty scheme", raw), nil)
	}

	rec := Record{
		Scheme:  strings.ToLower(u.Scheme),
		Netloc:  u.Host,
		Host:    u.Hostname(),
		Path:    u.Path,
		Options: map[string]any{},
	}

	if portStr := u.Port(); portStr != "" {
		p, perr := strconv.Atoi(portStr)
		if perr != nil {
			return Record{}, dcerrors.Configuration(fmt.Sprintf("invalid port in URI %q", raw), perr)
		}
		rec.Port = p
	}

	if u.User != nil {
		rec.Username = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			rec.Password = pw
		}
	}

	query := u.Query()
	for k, values := range query {
		if len(values) == 1 {
			rec.Options[k] = values[0]
		} else {
			rec.Options[k] = append([]string(nil), values...)
		}
	}

	return rec, nil
}

// FromConfig normalizes an already-structured config map (the {type, ...opts}
// shape of spec.md §6) into a Record. The map must carry an explicit "type"
// or "scheme" key; any other keys become options.
func FromConfig(cfg map[string]any) (Record, error) {
	scheme, _ := cfg["type"].(string)
	if scheme == "" {
		scheme, _ = cfg["scheme"].(string)
	}
	if scheme == "" {
		return Record{}, dcerrors.Configuration("config record must include 'type' or 'scheme'", nil)
	}

	rec := Record{Scheme: strings.ToLower(scheme), Options: map[string]any{}}
	if path, ok := cfg["path"].(string); ok {
		rec.Path = path
	}
	if host, ok := cfg["host"].(string); ok {
		rec.Host = host
	}
	if netloc, ok := cfg["netloc"].(string); ok {
		rec.Netloc = netloc
	}
	if user, ok := cfg["username"].(string); ok {
		rec.Username = user
	}
	if pw, ok := cfg["password"].(string); ok {
		rec.Password = pw
	}
	if port, ok := cfg["port"]; ok {
		switch v := port.(type) {
		case int:
			rec.Port = v
		case float64:
			rec.Port = int(v)
		case string:
			p, err := strconv.Atoi(v)
			if err != nil {
				return Record{}, dcerrors.Configuration(fmt.Sprintf("invalid port %q", v), err)
			}
			rec.Port = p
		}
	}

	reserved := map[string]struct{}{
		"type": {}, "scheme": {}, "path": {}, "host": {}, "netloc": {},
		"username": {}, "password": {}, "port": {},
	}
	for k, v := range cfg {
		if _, skip := reserved[k]; skip {
			continue
		}
		rec.Options[k] = v
	}

	return rec, nil
}

// String reconstructs a URI string from a Record, used by the round-trip
// law in spec.md §8: scheme/host/port/user/path/options are all preserved
// (option order is free).
func (r Record) String() string {
	if r.Netloc == "" && r.Host == "" {
		return r.Scheme + ":" + r.Path
	}

	var b strings.Builder
	b.WriteString(r.Scheme)
	b.WriteString("://")
	if r.Username != "" {
		b.WriteString(r.Username)
		if r.Password != "" {
			b.WriteString(":")
			b.WriteString(r.Password)
		}
		b.WriteString("@")
	}
	host := r.Host
	if host == "" {
		host = r.Netloc
	}
	b.WriteString(host)
	if r.Port != 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(r.Port))
	}
	b.WriteString(r.Path)

	if len(r.Options) > 0 {
		values := url.Values{}
		for k, v := range r.Options {
			switch t := v.(type) {
			case string:
				values.Set(k, t)
			case []string:
				for _, item := range t {
					values.Add(k, item)
				}
			default:
				values.Set(k, fmt.Sprintf("%v", t))
			}
		}
		b.WriteString("?")
		b.WriteString(values.Encode())
	}

	return b.String()
}
