package structures

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"uint"`
	Dir   string `yaml:"dir" validate:"unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

type StatsConfig struct {
	Compress bool `yaml:"compress"`
}

type ThreadingConfig struct {
	OrphanPolicy string `yaml:"orphanPolicy" validate:"in:drop,promote"`
}

type RenderConfig struct {
	Title      string `yaml:"title"`
	Stylesheet string `yaml:"stylesheet"`
}

// UserColor pins a display color to a user id. Stored as a list because
// viper folds map keys to lower case and Slack ids are upper case.
type UserColor struct {
	ID    string `yaml:"id" mapstructure:"id" validate:"required"`
	Color string `yaml:"color" mapstructure:"color" validate:"required|regex:^#[0-9a-fA-F]{6}$"`
}

type Config struct {
	AppName    string
	Debug      bool
	Path       string
	UsersFile  string          `yaml:"usersFile" validate:"required"`
	InputDir   string          `yaml:"inputDir" validate:"required"`
	OutputDir  string          `yaml:"outputDir" validate:"required"`
	Timezone   string          `yaml:"timezone"`
	Logger     LoggerConfig    `yaml:"logger"`
	Cache      CacheConfig     `yaml:"cache"`
	Metrics    MetricsConfig   `yaml:"metrics"`
	Stats      StatsConfig     `yaml:"stats"`
	Threading  ThreadingConfig `yaml:"threading"`
	Render     RenderConfig    `yaml:"render"`
	UserColors []UserColor     `yaml:"userColors"`
}

type CliFlags struct {
	ConfigPath  string
	DebugMode   bool
	Channels    []string
	AllChannels bool
	Stats       bool
}
