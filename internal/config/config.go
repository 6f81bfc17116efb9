package config

import "github.com/ilyakaznacheev/cleanenv"

type Config struct {
	Port                 int    `env:"APP_PORT" env-default:"8084"`
	DBDSN                string `env:"DB_DSN"`
	JWTSecret            string `env:"JWT_SECRET"`
	TokenTTLDays         int    `env:"TOKEN_TTL_DAYS" env-default:"30"`
	AdminSecretKey       string `env:"ADMIN_SECRET_KEY"`
	WSInsecureSkipVerify bool   `env:"WS_INSECURE_SKIP_VERIFY" env-default:"false"`
	SuggestAPIURL        string `env:"SUGGEST_API_URL" env-default:"https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"`
	SuggestAPIKey        string `env:"SUGGEST_API_KEY"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
