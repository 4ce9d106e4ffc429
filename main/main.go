package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/strcore"
	"github.com/rawbytedev/strcore/pkg/compactwire"
	"github.com/rawbytedev/strcore/pkg/foreign"
)

type config struct {
	Strings strcore.Options     `yaml:"strings"`
	Wire    compactwire.Options `yaml:"wire"`
}

func loadConfig(path string) (config, error) {
	cfg := config{Strings: strcore.DefaultOptions(), Wire: compactwire.DefaultOptions()}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Strings.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "YAML config file")
		verbose    = pflag.BoolP("verbose", "v", false, "log copying paths at debug level")
		wire       = pflag.Bool("wire", false, "also round-trip every string through compactwire")
	)
	pflag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}
	cfg.Strings.Logger = logger

	if err := run(os.Stdout, cfg, *wire, logger); err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

// run prints a transcript of how strings are stored as they are
// sliced, bridged and compared.
func run(w io.Writer, cfg config, wire bool, logger *slog.Logger) error {
	alloc := strcore.NewAllocator(cfg.Strings)
	p := func(format string, args ...any) { fmt.Fprintf(w, format+"\n", args...) }

	p("Testing...")

	snowy := strcore.Literal("\U0001F3C2\u2603\u2745\u2746\u2744\uFE0E\u26C4\uFE0F\u2744\uFE0F")
	p("Hello, snowy world: %s", snowy)
	p("  %s", snowy.Repr())
	p("  %s", strcore.String{}.Repr())

	p("--- UTF-16 basic round-tripping ---")
	nsUTF16 := foreign.New(snowy.String())
	_, contiguous := nsUTF16.Contiguous16()
	p("has UTF-16: %t", contiguous)
	p("  %s", foreign.Repr(nsUTF16))
	bridged := strcore.FromForeign(nsUTF16)
	p("  %s", bridged.Repr())
	p("  %s", foreign.Repr(alloc.ToForeign(bridged)))

	p("--- UTF-16 slicing ---")
	slice := bridged.Slice(2, 8)
	p("  %s", slice.Repr())
	nsSlice := alloc.ToForeign(slice)
	p("  %s", foreign.Repr(nsSlice))
	p("  %s", strcore.FromForeign(nsSlice).Repr())
	if origin, ok := strcore.Recover(nsSlice); ok {
		p("  copied from %s", origin.Repr())
	}

	p("--- ASCII basic round-tripping ---")
	nsASCII := foreign.New("foobar")
	_, contiguous = nsASCII.Contiguous16()
	p("has UTF-16: %t", contiguous)
	p("  %s", foreign.Repr(nsASCII))
	ascii := strcore.FromForeign(nsASCII)
	p("  %s", ascii.Repr())
	p("  %s", foreign.Repr(alloc.ToForeign(ascii)))

	p("--- ASCII slicing ---")
	tail := ascii.Slice(3, 6)
	p("  %s", tail.Repr())
	nsTail := alloc.ToForeign(tail)
	p("  %s", foreign.Repr(nsTail))
	p("  %s", strcore.FromForeign(nsTail).Repr())

	p("--- Native ---")
	native := alloc.New("foobar")
	p("  %s", native.Repr())
	p("  %s", native.Slice(3, 6).Repr())

	p("--- Literals ---")
	lit := strcore.Literal("foobar")
	p("  %s", lit.Repr())
	p("  %t", lit.IsASCII())
	p("  %s", snowy.Repr())
	p("  %t", !snowy.IsASCII())

	p("--- Comparison ---")
	b := alloc.NewBuilder()
	b.AppendString("ABCDEF")
	s := b.String()
	b.AppendString("G")
	s1 := b.String()
	p("%s == %s => %t", s, s, s.Equal(s))
	p("%s == %s => %t", s, s1, s.Equal(s1))
	p("%s == \"ABCDEF\" => %t", s, s.Equal(strcore.Literal("ABCDEF")))
	so, sox, tocks := strcore.Literal("so"), strcore.Literal("sox"), strcore.Literal("tocks")
	p("so < so => %t", so.Less(so))
	p("so < sox => %t", so.Less(sox))
	p("so < tocks => %t", so.Less(tocks))
	p("sox < tocks => %t", sox.Less(tocks))
	p("<%t, %t, %t, %t>",
		snowy.HasPrefix(strcore.Literal("\U0001F3C2\u2603")), snowy.HasPrefix(strcore.Literal("\u2603")),
		snowy.HasSuffix(strcore.Literal("\u26C4\uFE0F\u2744\uFE0F")), snowy.HasSuffix(strcore.Literal("\u2603")))

	if wire {
		if err := roundTrip(w, cfg.Wire, logger, snowy, slice, tail, native, s1); err != nil {
			return err
		}
	}
	p("Done.")
	return nil
}

func roundTrip(w io.Writer, opts compactwire.Options, logger *slog.Logger, strs ...strcore.String) error {
	enc, err := compactwire.NewEncoder(opts)
	if err != nil {
		return err
	}
	defer enc.Close()
	dec, err := compactwire.NewDecoder(opts)
	if err != nil {
		return err
	}
	defer dec.Close()

	fmt.Fprintln(w, "--- Wire ---")
	for _, s := range strs {
		frame, err := enc.Encode(s)
		if err != nil {
			return err
		}
		got, _, err := dec.Decode(frame)
		if err != nil {
			return fmt.Errorf("decoding %q: %w", s, err)
		}
		logger.Debug("wire round trip", "units", s.Len(), "frame_bytes", len(frame))
		fmt.Fprintf(w, "  %d bytes, equal: %t, %s\n", len(frame), got.Equal(s), got.Repr())
	}
	return nil
}
