package pflow

import(
	"log"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Verbosity           int

	WindowRadius        int     // sampling window spans (2r+1)^2 offsets around the pixel
	WindowRotationDeg   float64 // window grid rotation; 45 pulls the taps off the pixel lattice
	ConfidenceThreshold float64 // residual-to-gradient ratio a window must exceed to get corrected

	Levels              int     // pyramid depth; 0 means work it out from the frame size
	FilterPasses        int     // blur passes over the field after each level

	MaxDimension        int     // prescale frames so neither side exceeds this; 0 = leave alone

	Visualizer          string  // which renderer the CLI uses: wheel / gray / quiver
	QuiverStep          int     // arrow spacing for the quiver renderer, in pixels
}

func NewConfig() Config {
	return Config{
		WindowRadius:        1,
		WindowRotationDeg:   45.0,
		ConfidenceThreshold: 0.1,
		FilterPasses:        1,
		Visualizer:          "wheel",
		QuiverStep:          16,
	}
}

func NewConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}
