package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"rvcss/state"
)

// Compile builds stylesheet for every declaration found in styles source.
func Compile(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no styles source has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Compiling styles", zap.String("source", src), zap.String("destination", displayName(dst)))
	defer func(start time.Time) {
		log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return compile(ctx, env, src, dst, cmd.String("classes"), log)
}

// compile handles the core logic independently of CLI framework.
func compile(ctx context.Context, env *state.LocalEnv, src, dst, classesFile string, log *zap.Logger) (err error) {
	lib, err := loadLibrary(src, env)
	if err != nil {
		return err
	}

	eng := env.Engine()
	classes := make(map[string][]string, len(lib.Names()))
	for _, name := range lib.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}
		decl, _ := lib.Get(name)
		names, err := eng.Compile(decl, nil)
		if err != nil {
			return fmt.Errorf("style '%s': %w", name, err)
		}
		classes[name] = names
		log.Debug("Style compiled", zap.String("name", name), zap.Strings("classes", names))
	}

	var buf bytes.Buffer
	banner, err := expandBanner(env.Cfg.Stylesheet.Banner, bannerValues(src, len(classes), eng.Len()))
	if err != nil {
		return err
	}
	buf.WriteString(banner)
	if _, err := eng.WriteTo(&buf); err != nil {
		return fmt.Errorf("unable to generate stylesheet: %w", err)
	}
	env.Rpt.StoreData("stylesheet.css", buf.Bytes())
	env.Rpt.StoreData("engine.txt", []byte(eng.Dump()))

	out, err := createOutput(dst, env.Overwrite)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()
	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}

	if len(classesFile) > 0 {
		if err := writeClasses(classesFile, classes, env.Overwrite); err != nil {
			return err
		}
	}
	log.Info("Stylesheet generated", zap.Int("styles", len(classes)), zap.Int("classes", eng.Len()))
	return nil
}

// writeClasses saves YAML mapping of style names to class lists, names are
// in natural order.
func writeClasses(name string, classes map[string][]string, overwrite bool) (err error) {
	keys := make([]string, 0, len(classes))
	for k := range classes {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))

	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range keys {
		var kn, vn yaml.Node
		if err := kn.Encode(k); err != nil {
			return err
		}
		if err := vn.Encode(classes[k]); err != nil {
			return err
		}
		vn.Style = yaml.FlowStyle
		doc.Content = append(doc.Content, &kn, &vn)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("unable to marshal class names: %w", err)
	}

	out, err := createOutput(name, overwrite)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write class names: %w", err)
	}
	return nil
}
