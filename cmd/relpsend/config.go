package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/davrul/relpc/internal/relp/session"
)

// senderConfig is the resolved relpsend run configuration.
type senderConfig struct {
	Addr    string
	Count   int
	Session session.Config
}

// fileConfig is the relpsend config.toml key mapping.
type fileConfig struct {
	Addr           string `toml:"addr"`
	Count          int    `toml:"count"`
	Software       string `toml:"software"`
	Commands       string `toml:"commands"`
	DialTimeoutMS  int    `toml:"dial_timeout_ms"`
	ReadTimeoutMS  int    `toml:"read_timeout_ms"`
	WriteTimeoutMS int    `toml:"write_timeout_ms"`
}

func defaultSenderConfig() senderConfig {
	return senderConfig{
		Addr:    "localhost:2514",
		Count:   5,
		Session: session.DefaultConfig(),
	}
}

// loadSenderConfig overlays config file values onto defaults; only keys
// present in the file override.
func loadSenderConfig(path string) (senderConfig, error) {
	cfg := defaultSenderConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return senderConfig{}, fmt.Errorf("load relpsend config: %w", err)
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("count") {
		if raw.Count < 0 {
			return senderConfig{}, fmt.Errorf("load relpsend config: negative count")
		}
		cfg.Count = raw.Count
	}
	if meta.IsDefined("software") {
		cfg.Session.Software = strings.TrimSpace(raw.Software)
	}
	if meta.IsDefined("commands") {
		cfg.Session.Commands = strings.TrimSpace(raw.Commands)
	}
	if meta.IsDefined("dial_timeout_ms") {
		cfg.Session.DialTimeout = time.Duration(raw.DialTimeoutMS) * time.Millisecond
	}
	if meta.IsDefined("read_timeout_ms") {
		cfg.Session.ReadTimeout = time.Duration(raw.ReadTimeoutMS) * time.Millisecond
	}
	if meta.IsDefined("write_timeout_ms") {
		cfg.Session.WriteTimeout = time.Duration(raw.WriteTimeoutMS) * time.Millisecond
	}
	return cfg, nil
}
