package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/avscale/filter"
	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/indicator"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/scaler/goscale"
	"github.com/xaionaro-go/avscale/scaler/software"
	"github.com/xaionaro-go/avscale/types"
	"gopkg.in/yaml.v3"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	cfg := filter.DefaultConfig()
	cfg.AddFlags(pflag.CommandLine)
	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	options := pflag.String("options", "", "stage options in the 'w=640:h=-3' form; replaces the other stage flags")
	configYAML := pflag.String("config-yaml", "", "stage options as inline YAML, applied on top of the flags")
	inFormat := pflag.String("in-format", pixfmt.YUV420P.String(), "input pixel format")
	inSize := types.Resolution{Width: 1920, Height: 1080}
	pflag.Var(&inSize, "in-size", "input size, WxH")
	var inDisplay types.Resolution
	pflag.Var(&inDisplay, "in-display", "input display size, WxH (default: the input size)")
	accept := pflag.StringSlice("accept", nil, "pixel formats the next stage accepts with a conversion (default: everything)")
	acceptHW := pflag.StringSlice("accept-hw", nil, "pixel formats the next stage consumes directly")
	engineName := pflag.String("engine", "go", "scaling engine: go, libav")
	eq := pflag.StringSlice("eq", nil, "equalizer settings to apply after the configuration, e.g. brightness=10")
	frames := pflag.Int("frames", 0, "number of synthetic frames to push through the stage")
	pflag.Parse()
	if len(pflag.Args()) != 0 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if err := run(ctx, runParams{
		Config:     cfg,
		Options:    *options,
		ConfigYAML: *configYAML,
		InFormat:   *inFormat,
		InSize:     inSize,
		InDisplay:  inDisplay,
		Accept:     *accept,
		AcceptHW:   *acceptHW,
		Engine:     *engineName,
		Equalizer:  *eq,
		Frames:     *frames,
	}); err != nil {
		l.Error(err)
		belt.Flush(ctx)
		os.Exit(1)
	}
}

type runParams struct {
	Config     filter.Config
	Options    string
	ConfigYAML string
	InFormat   string
	InSize     types.Resolution
	InDisplay  types.Resolution
	Accept     []string
	AcceptHW   []string
	Engine     string
	Equalizer  []string
	Frames     int
}

func run(ctx context.Context, p runParams) error {
	cfg := p.Config
	if p.Options != "" {
		var err error
		cfg, err = filter.ParseOptions(p.Options)
		if err != nil {
			return err
		}
	}
	if p.ConfigYAML != "" {
		if err := yaml.Unmarshal([]byte(p.ConfigYAML), &cfg); err != nil {
			return fmt.Errorf("unable to parse --config-yaml: %w", err)
		}
	}

	in, err := inputParams(p)
	if err != nil {
		return err
	}

	sink, err := newSink(p.Accept, p.AcceptHW)
	if err != nil {
		return err
	}

	engine, err := newEngine(ctx, p.Engine)
	if err != nil {
		return err
	}

	stage, err := filter.New(ctx, cfg, engine, sink)
	if err != nil {
		return err
	}
	defer stage.Close(ctx)

	fmt.Printf("config: %s\n", cfg)
	fmt.Printf("input: %s (%s)\n", in, stage.QueryFormat(ctx, in.PixelFormat))

	out, err := stage.Reconfig(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("output: %s\n", out)

	for _, item := range p.Equalizer {
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			return fmt.Errorf("invalid equalizer setting '%s', expected name=value", item)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid equalizer value in '%s': %w", item, err)
		}
		if err := stage.Control(ctx, filter.SetEqualizer{Item: name, Value: v}); err != nil {
			return err
		}
		get := &filter.GetEqualizer{Item: name}
		if err := stage.Control(ctx, get); err != nil {
			return err
		}
		fmt.Printf("equalizer: %s=%d\n", name, get.Value)
	}

	avgTime := indicator.NewSmoother[time.Duration](8)
	for idx := 0; idx < p.Frames; idx++ {
		src, err := frame.New(in)
		if err != nil {
			return err
		}
		fillPattern(src, idx)
		src.PTS = int64(idx)

		startTS := time.Now()
		dst, err := stage.FilterFrame(ctx, src)
		if err != nil {
			return err
		}
		took := time.Since(startTS)
		fmt.Printf("frame %d: %s in %v (avg: %v)\n", idx, dst, took, avgTime.Update(took))
		frame.Release(dst)
	}
	return nil
}

func inputParams(p runParams) (types.ImageParams, error) {
	var id pixfmt.ID
	if err := id.UnmarshalText([]byte(p.InFormat)); err != nil {
		return types.ImageParams{}, fmt.Errorf("invalid --in-format: %w", err)
	}
	display := p.InDisplay
	if display.Width == 0 && display.Height == 0 {
		display = p.InSize
	}
	return types.ImageParams{
		PixelFormat:   id,
		Width:         p.InSize.Width,
		Height:        p.InSize.Height,
		DisplayWidth:  display.Width,
		DisplayHeight: display.Height,
	}, nil
}

func newEngine(ctx context.Context, name string) (scaler.Engine, error) {
	switch name {
	case "go":
		return goscale.New(), nil
	case "libav":
		software.RouteLibavLogs(logger.FromCtx(ctx))
		return software.New(), nil
	}
	return nil, fmt.Errorf("unknown engine '%s'", name)
}

func fillPattern(f *frame.Frame, seed int) {
	for idx := range f.Buffer {
		f.Buffer[idx] = byte(idx + seed)
	}
}
