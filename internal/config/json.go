package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the
// JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string `json:"token_sign_key"`
		TokenIssuer   string `json:"token_issuer"`
		BcryptCost    int    `json:"bcrypt_cost"`
		BaseURL       string `json:"base_url"`
		SecureCookies bool   `json:"secure_cookies"`
		Version       string `json:"version"`
	} `json:"app,omitempty"`

	Auth struct {
		LockoutThreshold      int      `json:"lockout_threshold"`
		LockoutDuration       Duration `json:"lockout_duration"`
		IdleTimeout           Duration `json:"idle_timeout"`
		RememberMeIdleTimeout Duration `json:"remember_me_idle_timeout"`
		RoleSyncInterval      Duration `json:"role_sync_interval"`
		ResetTokenTTL         Duration `json:"reset_token_ttl"`
		VerificationTokenTTL  Duration `json:"verification_token_ttl"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	RateLimit struct {
		LoginLimit  int      `json:"login_limit"`
		LoginWindow Duration `json:"login_window"`
		Timeout     Duration `json:"timeout"`
	} `json:"rate_limit,omitempty"`

	Mailer struct {
		BaseURL        string   `json:"base_url"`
		APIKey         string   `json:"api_key"`
		From           string   `json:"from"`
		RequestTimeout Duration `json:"request_timeout"`
		RatePerSecond  float64  `json:"rate_per_second"`
	} `json:"mailer,omitempty"`

	Weather struct {
		BaseURL        string   `json:"base_url"`
		APIKey         string   `json:"api_key"`
		CacheTTL       Duration `json:"cache_ttl"`
		RequestTimeout Duration `json:"request_timeout"`
		RatePerSecond  float64  `json:"rate_per_second"`
	} `json:"weather,omitempty"`

	Audit struct {
		Brokers []string `json:"brokers"`
		Topic   string   `json:"topic"`
	} `json:"audit,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		GRPCAddress       string   `json:"grpc_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		TrustProxyHeaders bool     `json:"trust_proxy_headers"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			BcryptCost:    j.App.BcryptCost,
			BaseURL:       j.App.BaseURL,
			SecureCookies: j.App.SecureCookies,
			Version:       j.App.Version,
		},
		Auth: Auth{
			LockoutThreshold:      j.Auth.LockoutThreshold,
			LockoutDuration:       time.Duration(j.Auth.LockoutDuration),
			IdleTimeout:           time.Duration(j.Auth.IdleTimeout),
			RememberMeIdleTimeout: time.Duration(j.Auth.RememberMeIdleTimeout),
			RoleSyncInterval:      time.Duration(j.Auth.RoleSyncInterval),
			ResetTokenTTL:         time.Duration(j.Auth.ResetTokenTTL),
			VerificationTokenTTL:  time.Duration(j.Auth.VerificationTokenTTL),
		},
		Storage: Storage{
			DB: DB{
				Driver: j.Storage.DB.Driver,
				DSN:    j.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:  j.Storage.Redis.Address,
				Password: j.Storage.Redis.Password,
				DB:       j.Storage.Redis.DB,
			},
		},
		RateLimit: RateLimit{
			LoginLimit:  j.RateLimit.LoginLimit,
			LoginWindow: time.Duration(j.RateLimit.LoginWindow),
			Timeout:     time.Duration(j.RateLimit.Timeout),
		},
		Mailer: Mailer{
			BaseURL:        j.Mailer.BaseURL,
			APIKey:         j.Mailer.APIKey,
			From:           j.Mailer.From,
			RequestTimeout: time.Duration(j.Mailer.RequestTimeout),
			RatePerSecond:  j.Mailer.RatePerSecond,
		},
		Weather: Weather{
			BaseURL:        j.Weather.BaseURL,
			APIKey:         j.Weather.APIKey,
			CacheTTL:       time.Duration(j.Weather.CacheTTL),
			RequestTimeout: time.Duration(j.Weather.RequestTimeout),
			RatePerSecond:  j.Weather.RatePerSecond,
		},
		Audit: Audit{
			Brokers: j.Audit.Brokers,
			Topic:   j.Audit.Topic,
		},
		Server: Server{
			HTTPAddress:       j.Server.HTTPAddress,
			GRPCAddress:       j.Server.GRPCAddress,
			RequestTimeout:    time.Duration(j.Server.RequestTimeout),
			TrustProxyHeaders: j.Server.TrustProxyHeaders,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
