package config

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
)

const paramFilename = "param.yaml"

type ServerConfig struct {
	ConfigDir      string
	DebugMode      bool
	SimulationMode bool

	*ServerParam
	*ScreenState
}

func NewServerConfig(configDir string, debugMode bool, simulationMode bool) *ServerConfig {
	serverConfig := &ServerConfig{
		ConfigDir:      configDir,
		DebugMode:      debugMode,
		SimulationMode: simulationMode,
	}

	// Check Configuration folder
	_, err := os.Stat(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Printf("Creation of config folder: %s", configDir)
			err = os.MkdirAll(configDir, 0770)
			if err != nil {
				logrus.Fatalf("Unable to create config folder: %v\n", err)
			}
		} else {
			logrus.Fatalf("Unable to access config folder: %s", configDir)
		}
	}

	serverConfig.ServerParam, err = LoadServerParam(serverConfig.GetCompleteParamFilename())
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Fatalf("Unable to interpret config file: %v\n", err)
		}
		logrus.Infof("Create default param file")
		serverConfig.ServerParam, err = DefaultServerParam()
		if err != nil {
			logrus.Fatalf("Unable to interpret default config file: %v\n", err)
		}
		serverConfig.SaveParam()
	}

	if _, err = serverConfig.NightParam.Window(); err != nil {
		logrus.Fatalf("Wrong night settings: %v\n", err)
	}

	// Open screen state file
	serverConfig.ScreenState = NewScreenState(serverConfig.GetCompleteScreenStateFilename())

	return serverConfig
}

// DefaultServerParam returns the embedded default parameters
func DefaultServerParam() (*ServerParam, error) {
	serverParam := &ServerParam{}
	err := yaml.Unmarshal(ParamDefaultFile, serverParam)
	if err != nil {
		return nil, err
	}
	return serverParam, nil
}

// LoadServerParam reads a param file, missing keys keep their default value
func LoadServerParam(filename string) (*ServerParam, error) {
	rawConfig, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	serverParam, err := DefaultServerParam()
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(rawConfig, serverParam)
	if err != nil {
		return nil, err
	}
	return serverParam, nil
}

func (sc *ServerConfig) GetCompleteParamFilename() string {
	return filepath.Join(sc.ConfigDir, paramFilename)
}

func (sc *ServerConfig) GetCompleteScreenStateFilename() string {
	return sc.resolve(sc.ScreenStateFile)
}

func (sc *ServerConfig) GetCompleteLogoFolder() string {
	return sc.resolve(sc.LogoFolder)
}

func (sc *ServerConfig) GetCompleteIconFolder() string {
	return sc.resolve(sc.IconFolder)
}

func (sc *ServerConfig) GetCompleteFlightFixtureFilename() string {
	return sc.resolve(sc.FlightParam.FixtureFile)
}

func (sc *ServerConfig) GetCompleteWeatherFilename() string {
	return sc.resolve(sc.WeatherParam.File)
}

func (sc *ServerConfig) GetCompleteFlagsFolder() string {
	return sc.resolve(sc.NetworkParam.FlagsFolder)
}

func (sc *ServerConfig) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(sc.ConfigDir, path)
}

func (sc *ServerConfig) SaveParam() {
	logrus.Debugf("Save param file: %s", sc.GetCompleteParamFilename())
	rawConfig, err := yaml.Marshal(*sc.ServerParam)
	if err != nil {
		logrus.Fatalf("Unable to serialize param file: %v\n", err)
	}
	err = os.WriteFile(sc.GetCompleteParamFilename(), rawConfig, 0660)
	if err != nil {
		logrus.Fatalf("Unable to save param file: %v\n", err)
	}
}
