package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// fileConfig mirrors Config in HCL. Attributes left out of the file keep
// their zero value and do not override anything.
//
//	log_level = "debug"
//
//	server {
//	  port          = 9090
//	  write_timeout = "3m"
//	}
//
//	llm {
//	  provider = "openai"
//	  model    = "gpt-4o-mini"
//	}
type fileConfig struct {
	AppEnv   string       `hcl:"app_env,optional"`
	LogLevel string       `hcl:"log_level,optional"`
	Server   *fileServer  `hcl:"server,block"`
	LLM      *fileLLM     `hcl:"llm,block"`
	Retry    *fileRetry   `hcl:"retry,block"`
	Metrics  *fileMetrics `hcl:"metrics,block"`
}

type fileServer struct {
	Host            string   `hcl:"host,optional"`
	Port            int      `hcl:"port,optional"`
	ReadTimeout     string   `hcl:"read_timeout,optional"`
	WriteTimeout    string   `hcl:"write_timeout,optional"`
	ShutdownTimeout string   `hcl:"shutdown_timeout,optional"`
	AllowedOrigins  []string `hcl:"allowed_origins,optional"`
}

type fileLLM struct {
	Provider    string  `hcl:"provider,optional"`
	APIKey      string  `hcl:"api_key,optional"`
	BaseURL     string  `hcl:"base_url,optional"`
	Model       string  `hcl:"model,optional"`
	Temperature float64 `hcl:"temperature,optional"`
	MaxTokens   int     `hcl:"max_tokens,optional"`
	Timeout     string  `hcl:"timeout,optional"`
	JSONMode    bool    `hcl:"json_mode,optional"`
}

type fileRetry struct {
	MaxAttempts int    `hcl:"max_attempts,optional"`
	Delay       string `hcl:"delay,optional"`
}

type fileMetrics struct {
	Addr string `hcl:"addr,optional"`
}

func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return err
	}

	setString(&cfg.AppEnv, fc.AppEnv)
	setString(&cfg.LogLevel, fc.LogLevel)

	if s := fc.Server; s != nil {
		setString(&cfg.Server.Host, s.Host)
		if s.Port != 0 {
			cfg.Server.Port = s.Port
		}
		if len(s.AllowedOrigins) > 0 {
			cfg.Server.AllowedOrigins = s.AllowedOrigins
		}
		if err := setDuration(&cfg.Server.ReadTimeout, "server.read_timeout", s.ReadTimeout); err != nil {
			return err
		}
		if err := setDuration(&cfg.Server.WriteTimeout, "server.write_timeout", s.WriteTimeout); err != nil {
			return err
		}
		if err := setDuration(&cfg.Server.ShutdownTimeout, "server.shutdown_timeout", s.ShutdownTimeout); err != nil {
			return err
		}
	}

	if l := fc.LLM; l != nil {
		setString(&cfg.LLM.Provider, l.Provider)
		setString(&cfg.LLM.APIKey, l.APIKey)
		setString(&cfg.LLM.BaseURL, l.BaseURL)
		setString(&cfg.LLM.Model, l.Model)
		if l.Temperature != 0 {
			cfg.LLM.Temperature = float32(l.Temperature)
		}
		if l.MaxTokens != 0 {
			cfg.LLM.MaxTokens = l.MaxTokens
		}
		if l.JSONMode {
			cfg.LLM.JSONMode = true
		}
		if err := setDuration(&cfg.LLM.Timeout, "llm.timeout", l.Timeout); err != nil {
			return err
		}
	}

	if r := fc.Retry; r != nil {
		if r.MaxAttempts != 0 {
			cfg.Retry.MaxAttempts = r.MaxAttempts
		}
		if err := setDuration(&cfg.Retry.Delay, "retry.delay", r.Delay); err != nil {
			return err
		}
	}

	if m := fc.Metrics; m != nil {
		setString(&cfg.Metrics.Addr, m.Addr)
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}
