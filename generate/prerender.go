package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"rvcss/prerender"
	"rvcss/state"
)

// Prerender applies styles to HTML document.
func Prerender(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("prerender")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	styles := cmd.Args().Get(1)
	if len(styles) == 0 {
		return errors.New("no styles source has been specified")
	}
	dst := cmd.Args().Get(2)
	if cmd.Args().Len() > 3 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[3:]))
	}
	env.Overwrite = cmd.Bool("overwrite")

	var opts []prerender.Option
	// Documents without proper meta may need forced code page
	if cp := cmd.String("charset"); len(cp) > 0 {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			n, _ := ianaindex.IANA.Name(enc)
			log.Debug("Forcefully decoding input document", zap.String("charset", n))
			opts = append(opts, prerender.WithEncoding(enc))
		}
	}

	log.Info("Prerendering document", zap.String("source", src), zap.String("styles", styles), zap.String("destination", displayName(dst)))
	defer func(start time.Time) {
		log.Info("Prerendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return prerenderFile(ctx, env, src, styles, dst, log, opts...)
}

// prerenderFile handles the core logic independently of CLI framework.
func prerenderFile(ctx context.Context, env *state.LocalEnv, src, styles, dst string, log *zap.Logger, opts ...prerender.Option) (err error) {
	lib, err := loadLibrary(styles, env)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open input document: %w", err)
	}
	defer in.Close()
	if err := env.Rpt.StoreCopy("input/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to store input document in report", zap.Error(err))
	}

	out, err := createOutput(dst, env.Overwrite)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
		if err == nil && len(dst) > 0 {
			env.Rpt.Store("output/"+filepath.Base(dst), dst)
		}
	}()

	return prerender.Render(ctx, in, out, lib, env.Engine(), log, opts...)
}
