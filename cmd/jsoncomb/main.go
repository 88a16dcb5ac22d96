package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/reoring/jsoncomb"
	"github.com/reoring/jsoncomb/cmd/jsoncomb/internal/convert"
	"github.com/reoring/jsoncomb/decode"
	"github.com/reoring/jsoncomb/encode"
	"github.com/reoring/jsoncomb/i18n"
	sinkmp "github.com/reoring/jsoncomb/sink/msgpack"
	sinkpb "github.com/reoring/jsoncomb/sink/structpb"
	sinkyaml "github.com/reoring/jsoncomb/sink/yaml"
	srcfj "github.com/reoring/jsoncomb/source/fastjson"
	srcpb "github.com/reoring/jsoncomb/source/structpb"
	srcyaml "github.com/reoring/jsoncomb/source/yaml"
)

// Globals are flags shared by every command.
type Globals struct {
	Driver     string `help:"Input parser: go-json, fastjson, yaml, protojson or msgpack." default:"go-json" enum:"go-json,fastjson,yaml,protojson,msgpack" env:"JSONCOMB_DRIVER"`
	MaxDepth   int    `help:"Reject documents nested deeper than this (0 = unlimited)." default:"0"`
	StrictKeys bool   `help:"Reject objects with repeated keys."`
	LogLevel   string `help:"Log level: DEBUG, INFO, WARN, ERROR." default:"WARN" env:"JSONCOMB_LOG_LEVEL"`
	LogFile    string `help:"Also write logs to this file (rotated)." type:"path"`
	Lang       string `help:"Language of error messages (BCP 47)." default:"en" env:"JSONCOMB_LANG"`
}

func (g *Globals) driver() jsoncomb.Driver {
	switch g.Driver {
	case "fastjson":
		return srcfj.Driver()
	case "yaml":
		return srcyaml.Driver()
	case "protojson":
		return srcpb.Driver()
	case "msgpack":
		return jsoncomb.MsgpackDriver()
	default:
		return jsoncomb.DefaultDriver()
	}
}

func (g *Globals) parseOpt() jsoncomb.ParseOpt {
	opt := jsoncomb.ParseOpt{MaxDepth: g.MaxDepth}
	if g.StrictKeys {
		opt.OnDuplicateKey = jsoncomb.Error
	}
	return opt
}

// CLI is the command tree.
type CLI struct {
	Globals

	Get     GetCmd     `cmd:"" help:"Decode the value at a JSON Pointer as a given type."`
	Convert ConvertCmd `cmd:"" help:"Re-encode a document as JSON, YAML or protojson."`
	Dups    DupsCmd    `cmd:"" help:"List repeated object keys of a JSON document."`
}

// GetCmd decodes one typed value from each input file.
type GetCmd struct {
	Pointer string   `help:"JSON Pointer of the value, e.g. /items/0/name." short:"p" default:""`
	As      string   `help:"Target type: string, int, float, decimal, bool, time, uuid or value." default:"value" enum:"string,int,float,decimal,bool,time,uuid,value"`
	Jobs    int      `help:"Files decoded in parallel (0 = number of CPUs)." default:"0"`
	Files   []string `arg:"" help:"Input files; - reads stdin." type:"path"`
}

type result struct {
	out []byte
	err error
}

func (c *GetCmd) Run(g *Globals, log *zap.Logger) error {
	target, err := convert.As(c.As)
	if err != nil {
		return err
	}
	d, err := convert.At(c.Pointer, target)
	if err != nil {
		return err
	}
	drv, opt := g.driver(), g.parseOpt()

	results := make([]result, len(c.Files))
	var eg errgroup.Group
	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	eg.SetLimit(jobs)
	for i, name := range c.Files {
		eg.Go(func() error {
			data, err := readInput(name)
			if err != nil {
				results[i].err = err
				return nil
			}
			n, err := drv.Parse(data, opt)
			if err != nil {
				results[i].err = err
				return nil
			}
			v, err := decode.Decode(d, n)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].out = encode.Marshal(v)
			log.Debug("decoded", zap.String("file", name), zap.String("driver", drv.Name()))
			return nil
		})
	}
	_ = eg.Wait() // workers record failures per file

	failed := 0
	for i, r := range results {
		prefix := ""
		if len(c.Files) > 1 {
			prefix = c.Files[i] + ": "
		}
		if r.err != nil {
			failed++
			log.Warn("decode failed", zap.String("file", c.Files[i]), zap.Int("issues", len(decode.Flatten(r.err))))
			fmt.Fprintf(os.Stderr, "%s%s\n", prefix, decode.Render(r.err))
			continue
		}
		fmt.Printf("%s%s\n", prefix, r.out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(c.Files))
	}
	return nil
}

// ConvertCmd re-encodes a whole document.
type ConvertCmd struct {
	To     string `help:"Output format: json, json-indent, yaml, protojson or msgpack." default:"json" enum:"json,json-indent,yaml,protojson,msgpack"`
	Indent string `help:"Indent unit for json-indent." default:"  "`
	File   string `arg:"" help:"Input file; - reads stdin." type:"path" default:"-"`
}

func (c *ConvertCmd) Run(g *Globals, log *zap.Logger) error {
	data, err := readInput(c.File)
	if err != nil {
		return err
	}
	drv := g.driver()
	n, err := drv.Parse(data, g.parseOpt())
	if err != nil {
		return err
	}
	v, err := decode.Decode(convert.Value(), n)
	if err != nil {
		fmt.Fprintln(os.Stderr, decode.Render(err))
		return fmt.Errorf("convert %s failed", c.File)
	}
	log.Debug("converting", zap.String("file", c.File), zap.String("from", drv.Name()), zap.String("to", c.To))

	var out []byte
	switch c.To {
	case "yaml":
		if out, err = sinkyaml.Marshal(v); err != nil {
			return err
		}
	case "protojson":
		if out, err = protojson.Marshal(sinkpb.FromValue(v)); err != nil {
			return err
		}
		out = append(out, '\n')
	case "msgpack":
		if out, err = sinkmp.Marshal(v); err != nil {
			return err
		}
	case "json-indent":
		out = append(encode.MarshalIndent(v, c.Indent), '\n')
	default:
		out = append(encode.Marshal(v), '\n')
	}
	_, err = os.Stdout.Write(out)
	return err
}

// DupsCmd reports keys that parsing would silently collapse.
type DupsCmd struct {
	Max  int    `help:"Stop after this many reports (-1 = all)." default:"-1"`
	File string `arg:"" help:"Input file; - reads stdin." type:"path" default:"-"`
}

func (c *DupsCmd) Run(log *zap.Logger) error {
	data, err := readInput(c.File)
	if err != nil {
		return err
	}
	paths, err := jsoncomb.DuplicateKeys(data, c.Max)
	if err != nil {
		return err
	}
	log.Debug("duplicate scan", zap.String("file", c.File), zap.Int("found", len(paths)))
	for _, p := range paths {
		fmt.Println(p)
	}
	if len(paths) > 0 {
		return fmt.Errorf("%d duplicate keys", len(paths))
	}
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("jsoncomb"),
		kong.Description("Decode typed values from JSON/YAML documents and re-encode them."),
		kong.UsageOnError(),
	)
	log, err := newLogger(cli.LogLevel, cli.LogFile)
	ctx.FatalIfErrorf(err)
	defer func() { _ = log.Sync() }()

	i18n.SetLanguage(cli.Lang)
	err = ctx.Run(&cli.Globals, log)
	ctx.FatalIfErrorf(err)
}
