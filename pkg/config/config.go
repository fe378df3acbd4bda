package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Uploads  UploadsConfig
	Exports  ExportsConfig
	Realtime RealtimeConfig
	College  CollegeConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig controls the cookie session store.
type SessionConfig struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
}

// AuthConfig carries the shared-password login settings.
type AuthConfig struct {
	PrincipalEmail  string
	DefaultPassword string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// UploadsConfig controls attachment storage.
type UploadsConfig struct {
	Dir               string
	MaxFileSizeBytes  int64
	AllowedExtensions []string
}

// ExportsConfig controls attendance spreadsheet output.
type ExportsConfig struct {
	Dir string
}

// RealtimeConfig toggles the redis pub/sub bridge for display refreshes.
type RealtimeConfig struct {
	RedisEnabled bool
	Channel      string
}

// Department describes one entry of the configured department table.
type Department struct {
	Code     string
	Name     string
	HODEmail string
}

// CollegeConfig externalizes the department table and year list so
// departments can be added without a rebuild.
type CollegeConfig struct {
	Departments []Department
	Years       []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Secret:     v.GetString("SESSION_SECRET"),
		CookieName: v.GetString("SESSION_COOKIE_NAME"),
		MaxAge:     parseDuration(v.GetString("SESSION_MAX_AGE"), 24*time.Hour),
	}

	cfg.Auth = AuthConfig{
		PrincipalEmail:  strings.ToLower(v.GetString("PRINCIPAL_EMAIL")),
		DefaultPassword: v.GetString("DEFAULT_PASSWORD"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxUpload := v.GetInt64("MAX_UPLOAD_SIZE")
	if maxUpload <= 0 {
		maxUpload = 100 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		Dir:               v.GetString("UPLOAD_DIR"),
		MaxFileSizeBytes:  maxUpload,
		AllowedExtensions: splitAndTrim(v.GetString("ALLOWED_EXTENSIONS")),
	}

	cfg.Exports = ExportsConfig{Dir: v.GetString("EXPORT_DIR")}

	cfg.Realtime = RealtimeConfig{
		RedisEnabled: v.GetBool("REALTIME_REDIS_ENABLED"),
		Channel:      v.GetString("REALTIME_REDIS_CHANNEL"),
	}

	departments, err := parseDepartments(v.GetString("DEPARTMENTS"))
	if err != nil {
		return nil, err
	}
	cfg.College = CollegeConfig{
		Departments: departments,
		Years:       splitAndTrim(v.GetString("YEARS")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "noticeboard")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "dev_session_secret")
	v.SetDefault("SESSION_COOKIE_NAME", "noticeboard_session")
	v.SetDefault("SESSION_MAX_AGE", "24h")

	v.SetDefault("PRINCIPAL_EMAIL", "principal@college.edu")
	v.SetDefault("DEFAULT_PASSWORD", "college123")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MAX_UPLOAD_SIZE", 100*1024*1024)
	v.SetDefault("ALLOWED_EXTENSIONS", "pdf,png,jpg,jpeg,gif,mp4,mp3,doc,docx,xls,xlsx,txt,webm,ogg,wav")

	v.SetDefault("EXPORT_DIR", "./exports")

	v.SetDefault("REALTIME_REDIS_ENABLED", false)
	v.SetDefault("REALTIME_REDIS_CHANNEL", "noticeboard:events")

	v.SetDefault("DEPARTMENTS",
		"CSE:Computer Science & Engineering:csehod@college.edu,"+
			"ECE:Electronics & Communication Engineering:ecehod@college.edu,"+
			"EEE:Electrical & Electronics Engineering:eeehod@college.edu,"+
			"IT:Information Technology:ithod@college.edu,"+
			"MECH:Mechanical Engineering:mechhod@college.edu,"+
			"CIVIL:Civil Engineering:civilhod@college.edu,"+
			"AIDS:AI & Data Science:aidshod@college.edu,"+
			"AIML:AI & Machine Learning:aimlhod@college.edu")
	v.SetDefault("YEARS", "1st Year,2nd Year,3rd Year,4th Year")
}

// parseDepartments reads comma-separated "CODE:Name:hod@email" entries.
func parseDepartments(raw string) ([]Department, error) {
	entries := splitAndTrim(raw)
	departments := make([]Department, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, errors.New("invalid DEPARTMENTS entry: " + entry)
		}
		departments = append(departments, Department{
			Code:     strings.TrimSpace(parts[0]),
			Name:     strings.TrimSpace(parts[1]),
			HODEmail: strings.ToLower(strings.TrimSpace(parts[2])),
		})
	}
	return departments, nil
}

// DepartmentByCode returns the configured department for a code.
func (c CollegeConfig) DepartmentByCode(code string) (Department, bool) {
	for _, d := range c.Departments {
		if d.Code == code {
			return d, true
		}
	}
	return Department{}, false
}

// DepartmentByHODEmail resolves the department owning an HOD email.
func (c CollegeConfig) DepartmentByHODEmail(email string) (Department, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, d := range c.Departments {
		if d.HODEmail == email {
			return d, true
		}
	}
	return Department{}, false
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
