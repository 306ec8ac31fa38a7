package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Report   ReportConfig   `toml:"report"`
	Manifest ManifestConfig `toml:"manifest"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console, json
	Output string `toml:"output"` // stdout, stderr 或文件路径
}

// ReportConfig 装箱表配置
type ReportConfig struct {
	DetailSheet  string `toml:"detail_sheet"`
	TotalsSheet  string `toml:"totals_sheet"`
	OutputSuffix string `toml:"output_suffix"`
}

// ManifestConfig 发货清单配置
type ManifestConfig struct {
	PhonePrefix     string `toml:"phone_prefix"`
	HighlightColor  string `toml:"highlight_color"`
	FormattedSuffix string `toml:"formatted_suffix"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FromFile      bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Report: ReportConfig{
			DetailSheet:  "整理結果",
			TotalsSheet:  "JAN合計",
			OutputSuffix: "_report",
		},
		Manifest: ManifestConfig{
			PhonePrefix:     "+81",
			HighlightColor:  "CCE5FF",
			FormattedSuffix: "_formatted",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	loadDotEnv(exeDir)
	return LoadFrom(filepath.Join(exeDir, "config.toml"))
}

// LoadFrom 从指定路径加载配置；文件不存在时使用默认配置，环境变量始终生效
func LoadFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.FromFile = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	applyEnv(config, &info)
	return config, info, nil
}

// loadDotEnv 依次加载可执行文件目录与当前目录下的 .env，已存在的环境变量不会被覆盖
func loadDotEnv(exeDir string) {
	for _, p := range []string{filepath.Join(exeDir, ".env"), ".env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// applyEnv 环境变量覆盖
func applyEnv(config *AppConfig, info *LoadConfigInfo) {
	if v := os.Getenv("TEMUTOOL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
			info.PortSpecified = true
		}
	}
	if v := os.Getenv("TEMUTOOL_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("TEMUTOOL_LOG_FORMAT"); v != "" {
		config.Log.Format = v
	}
	if v := os.Getenv("TEMUTOOL_PHONE_PREFIX"); v != "" {
		config.Manifest.PhonePrefix = v
	}
}

// SaveConfig 保存配置到可执行文件同目录的 config.toml，返回写入路径
func SaveConfig(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	path := filepath.Join(exeDir, "config.toml")
	return path, SaveTo(path, config)
}

// SaveTo 将配置写为 TOML
func SaveTo(path string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
