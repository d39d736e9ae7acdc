// Package loader 负责加载 bootstrap 配置并推导服务元信息。
package loader

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/bionicotaku/lingo-services-greeting/internal/conf"
	loginfra "github.com/bionicotaku/lingo-services-greeting/internal/infrastructure/logger"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	envConfPath       = "CONF_PATH"
	envServiceName    = "SERVICE_NAME"
	envServiceVersion = "SERVICE_VERSION"
	envAppEnv         = "APP_ENV"
)

var envFileNames = []string{".env.local", ".env"}

// Params 包含构造配置 Bundle 所需的运行时输入参数。
type Params struct {
	ConfPath       string // 配置文件路径（可为空，使用默认值）
	ServiceName    string // 编译期注入的服务名（可为空）
	ServiceVersion string // 编译期注入的版本号（可为空）
}

// ServiceMetadata 保存服务标识信息，供日志和 Kratos App 使用。
type ServiceMetadata struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}

// Bundle 聚合强类型的配置片段，供下游 Wire 注入使用。
type Bundle struct {
	Bootstrap *conf.Bootstrap
	Service   ServiceMetadata
}

// BuildError 捕获配置构建过程中的上下文错误信息。
type BuildError struct {
	Stage string
	Path  string
	Err   error
}

// Error 实现 error 接口，提供包含上下文的错误信息。
func (e BuildError) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("config %s at %q: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Stage, e.Err)
}

// Unwrap 暴露底层错误，支持 errors.Is/As 链式查询。
func (e BuildError) Unwrap() error {
	return e.Err
}

// LoggerConfig 将服务元信息转换为 logger.Config。
func (m ServiceMetadata) LoggerConfig() loginfra.Config {
	return loginfra.Config{
		Service: m.Name,
		Version: m.Version,
		HostID:  m.InstanceID,
		Env:     m.Environment,
	}
}

// ParseConfPath 解析命令行中的 -conf 参数。
func ParseConfPath(flags *flag.FlagSet, args []string) (string, error) {
	var confPath string
	flags.StringVar(&confPath, "conf", "", "config path, eg: -conf configs/config.yaml")
	if err := flags.Parse(args); err != nil {
		return "", err
	}
	return confPath, nil
}

// Build 从 bootstrap 配置构建 Bundle。
//
// 流程：
// 1. 解析配置路径（应用回退规则）
// 2. best-effort 加载 .env 文件
// 3. 加载配置（默认目录缺失时使用内置默认值）并校验
// 4. 推导服务元信息
func Build(params Params) (*Bundle, error) {
	confPath, explicit := resolveConfPath(params.ConfPath)
	loadEnvFiles(confPath)

	bootstrap, err := loadBootstrap(confPath, explicit)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Bootstrap: bootstrap,
		Service:   buildServiceMetadata(params),
	}, nil
}

// ResolveConfPath 应用回退规则确定要加载的配置目录/文件路径。
// 优先级：显式传入路径 > CONF_PATH 环境变量 > 默认路径。
func ResolveConfPath(explicit string) string {
	p, _ := resolveConfPath(explicit)
	return p
}

func resolveConfPath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(envConfPath); env != "" {
		return env, true
	}
	return defaultConfPath, false
}

// loadBootstrap 加载并校验 Bootstrap 配置。
//
// 错误阶段：
//   - "load": 显式路径不存在或文件读取失败
//   - "scan": YAML/JSON 解析失败
//   - "validate": 配置约束不满足
func loadBootstrap(confPath string, explicit bool) (*conf.Bootstrap, error) {
	bc := defaultBootstrap()

	if _, err := os.Stat(confPath); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, BuildError{Stage: "load", Path: confPath, Err: err}
		}
		return finalize(bc, confPath)
	}

	c := config.New(config.WithSource(file.NewSource(confPath)))
	if err := c.Load(); err != nil {
		return nil, BuildError{Stage: "load", Path: confPath, Err: err}
	}
	defer c.Close()

	if err := c.Scan(bc); err != nil {
		return nil, BuildError{Stage: "scan", Path: confPath, Err: err}
	}
	return finalize(bc, confPath)
}

func defaultBootstrap() *conf.Bootstrap {
	return &conf.Bootstrap{
		Server: &conf.Server{
			HTTP: &conf.Server_HTTP{Timeout: conf.Duration(defaultHTTPTimeout)},
		},
		Observability: &conf.Observability{},
	}
}

// finalize 填充缺失节点、固定 greeting 监听地址并执行校验。
func finalize(bc *conf.Bootstrap, confPath string) (*conf.Bootstrap, error) {
	if bc.Server == nil {
		bc.Server = &conf.Server{}
	}
	if bc.Server.HTTP == nil {
		bc.Server.HTTP = &conf.Server_HTTP{Timeout: conf.Duration(defaultHTTPTimeout)}
	}
	if bc.Observability == nil {
		bc.Observability = &conf.Observability{}
	}
	bc.Server.HTTP.Network = "tcp"
	bc.Server.HTTP.Addr = conf.GreetingAddr

	if err := validate(bc); err != nil {
		return nil, BuildError{Stage: "validate", Path: confPath, Err: err}
	}
	return bc, nil
}

func validate(bc *conf.Bootstrap) error {
	if bc.Server.HTTP.Timeout < 0 {
		return fmt.Errorf("server.http.timeout must not be negative, got %s", bc.Server.HTTP.Timeout.AsDuration())
	}
	admin := bc.Server.GetAdmin()
	if admin == nil || admin.Addr == "" {
		return nil
	}
	if admin.Timeout < 0 {
		return fmt.Errorf("server.admin.timeout must not be negative, got %s", admin.Timeout.AsDuration())
	}
	if _, _, err := net.SplitHostPort(admin.Addr); err != nil {
		return fmt.Errorf("server.admin.addr %q: %w", admin.Addr, err)
	}
	if admin.Addr == conf.GreetingAddr {
		return fmt.Errorf("server.admin.addr must differ from the greeting address %s", conf.GreetingAddr)
	}
	return nil
}

// buildServiceMetadata 构建服务元信息。
// 优先级：环境变量 > 编译期注入值 > 默认值。
func buildServiceMetadata(params Params) ServiceMetadata {
	host, _ := os.Hostname()
	return ServiceMetadata{
		Name:        firstNonEmpty(os.Getenv(envServiceName), params.ServiceName, defaultServiceName),
		Version:     firstNonEmpty(os.Getenv(envServiceVersion), params.ServiceVersion, defaultServiceVersion),
		Environment: normalizeEnvironment(os.Getenv(envAppEnv)),
		InstanceID:  resolveInstanceID(host),
	}
}

func normalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "":
		return defaultEnvironment
	case "dev", "development", "local":
		return "development"
	case "stg", "stage", "staging":
		return "staging"
	case "prod", "production":
		return "production"
	default:
		return strings.ToLower(strings.TrimSpace(env))
	}
}

func resolveInstanceID(host string) string {
	if host = strings.TrimSpace(host); host != "" {
		return host
	}
	return uuid.NewString()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// loadEnvFiles best-effort 加载配置相关的 .env 文件，失败时忽略以保持幂等。
func loadEnvFiles(confPath string) {
	files := envFileCandidates(confPath)
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}

// envFileCandidates 按优先级返回存在的 .env 文件：
// confPath 所在目录优先于当前工作目录，.env.local 优先于 .env。
func envFileCandidates(confPath string) []string {
	seen := make(map[string]struct{})
	var files []string
	for _, dir := range orderedDirs(confPath) {
		for _, name := range envFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			files = append(files, candidate)
			seen[candidate] = struct{}{}
		}
	}
	return files
}

func orderedDirs(confPath string) []string {
	var dirs []string
	appendUnique := func(path string) {
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		for _, existing := range dirs {
			if existing == clean {
				return
			}
		}
		dirs = append(dirs, clean)
	}

	if confPath != "" {
		if info, err := os.Stat(confPath); err == nil {
			if info.IsDir() {
				appendUnique(confPath)
			} else {
				appendUnique(filepath.Dir(confPath))
			}
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		appendUnique(cwd)
	}

	return dirs
}
