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
	Server     ServerConfig      `toml:"server"`
	Data       DataConfig        `toml:"data"`
	Log        LogConfig         `toml:"log"`
	Calc       CalcConfig        `toml:"calc"`
	Overhead   OverheadConfig    `toml:"overhead"`
	Allowances []AllowanceConfig `toml:"allowances"`
	Reference  Reference         `toml:"reference"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Dir     string `toml:"dir"`
	Verbose bool   `toml:"verbose"`
}

// CalcConfig FTE 计算默认参数（均可在单次计算时覆盖）
type CalcConfig struct {
	TargetYear           int         `toml:"target_year"`
	OLE                  float64     `toml:"ole"`
	ScoreConstant        float64     `toml:"score_constant"`
	ShrinkageIdeal       float64     `toml:"shrinkage_ideal"`
	ShrinkageContingency float64     `toml:"shrinkage_contingency"`
	Hours                HoursConfig `toml:"hours"`
}

// HoursConfig 各口径的合同日工时
type HoursConfig struct {
	Monthly     float64 `toml:"monthly"`
	Daily       float64 `toml:"daily"`
	Ideal       float64 `toml:"ideal"`
	Contingency float64 `toml:"contingency"`
	Breakdown   float64 `toml:"breakdown"`
}

// OverheadConfig 固定开销（会议、聊天支持）
type OverheadConfig struct {
	WeeklyMeetings     []float64 `toml:"weekly_meetings"` // 每周固定会议时长（分钟）
	WorkingDaysPerWeek int       `toml:"working_days_per_week"`
	ChatMinutesPerDay  float64   `toml:"chat_minutes_per_day"`
	BonusMonths        []int     `toml:"bonus_months"`
	BonusMinutes       float64   `toml:"bonus_minutes"`
}

// AllowanceConfig 时间分解中的宽放项（分钟/出勤日）
type AllowanceConfig struct {
	Name          string  `toml:"name"`
	MinutesPerDay float64 `toml:"minutes_per_day"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Log: LogConfig{
			Dir: "logs",
		},
		Calc: CalcConfig{
			TargetYear:           2025,
			OLE:                  0.66,
			ScoreConstant:        2.5,
			ShrinkageIdeal:       0.80,
			ShrinkageContingency: 0.85,
			Hours: HoursConfig{
				Monthly:     7.9,
				Daily:       7.9,
				Ideal:       7.95,
				Contingency: 7.95,
				Breakdown:   7.95,
			},
		},
		Overhead: OverheadConfig{
			WeeklyMeetings:     []float64{20, 20, 20, 50, 50},
			WorkingDaysPerWeek: 5,
			ChatMinutesPerDay:  47,
			BonusMonths:        []int{1, 7},
			BonusMinutes:       60,
		},
		Allowances: DefaultAllowances(),
		Reference:  DefaultReference(),
	}
}

// DefaultAllowances 默认宽放表
func DefaultAllowances() []AllowanceConfig {
	return []AllowanceConfig{
		{Name: "meal", MinutesPerDay: 40},
		{Name: "physiological", MinutesPerDay: 24},
		{Name: "fatigue", MinutesPerDay: 28},
		{Name: "system_failure", MinutesPerDay: 10},
		{Name: "non_standard_meetings", MinutesPerDay: 30.4},
		{Name: "micro_tasks", MinutesPerDay: 30},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
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

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
// path 为空时使用可执行文件同目录下的 config.toml
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	// .env 只补充未设置的环境变量
	_ = godotenv.Load(filepath.Join(exeDir, ".env"))
	_ = godotenv.Load()

	if path == "" {
		path = filepath.Join(exeDir, "config.toml")
	}
	info.Path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
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

// applyEnv 环境变量覆盖
func applyEnv(config *AppConfig, info *LoadConfigInfo) {
	if v, ok := envInt("FTEAPP_PORT"); ok {
		config.Server.Port = v
		info.PortSpecified = true
	}
	if v := os.Getenv("FTEAPP_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("FTEAPP_LOGS_FOLDER"); v != "" {
		config.Log.Dir = v
	}
	if v, ok := envInt("FTEAPP_TARGET_YEAR"); ok {
		config.Calc.TargetYear = v
	}
	if v, ok := envFloat("FTEAPP_OLE"); ok {
		config.Calc.OLE = v
	}
}

func envInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func envFloat(key string) (float64, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SaveConfig 保存配置到 path（为空时写到可执行文件同目录）
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		path = filepath.Join(exeDir, "config.toml")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// resolveDir 相对路径按可执行文件目录解析
func resolveDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, dir)
}

// EnsureDataDir 确保数据目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := resolveDir(config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	// 创建子目录
	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath 获取数据文件路径
func GetDataPath(config *AppConfig, subdir, filename string) string {
	return filepath.Join(resolveDir(config.Data.DataDir), subdir, filename)
}

// LogDir 日志目录（绝对路径）
func LogDir(config *AppConfig) string {
	return resolveDir(config.Log.Dir)
}
