package main

import (
	"github.com/jessevdk/go-flags"
)

type raspberryConfig struct {
	TomatoPumpPin    string `long:"tomatopumppin" description:"GPIO pin driving the tomato pump" default:"GPIO17"`
	MustardPumpPin   string `long:"mustardpumppin" description:"GPIO pin driving the mustard pump" default:"GPIO27"`
	TomatoButtonPin  string `long:"tomatobuttonpin" description:"GPIO pin of the optional physical tomato button" default:"GPIO5"`
	MustardButtonPin string `long:"mustardbuttonpin" description:"GPIO pin of the optional physical mustard button" default:"GPIO6"`
}

type profilingConfig struct {
	Listen string `long:"listen" description:"Add an ip:port to start a profiling server on"`
}

type config struct {
	ShowVersion  bool             `short:"V" long:"version" description:"Display version information and exit"`
	Debug        bool             `long:"debug" description:"Start in debug mode"`
	DataDir      string           `long:"datadir" description:"Directory holding sauce.db" default:"."`
	Machine      string           `long:"machine" description:"The machine controller to use" choice:"raspberry" choice:"mock" default:"raspberry"`
	Listen       string           `long:"listen" description:"Add an ip:port to serve the api on" default:"127.0.0.1:9000"`
	DispenseTime float64          `long:"dispensetime" description:"Seconds a pump runs per accepted dispense" default:"1.5"`
	MinInterval  float64          `long:"mininterval" description:"Minimum seconds between two accepted dispenses" default:"1.5"`
	Raspberry    *raspberryConfig `group:"Raspberry" namespace:"raspberry"`
	Profiling    *profilingConfig `group:"Profiling" namespace:"profiling"`
}

func loadConfig() (*config, error) {
	cfg := &config{}

	if _, err := flags.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
