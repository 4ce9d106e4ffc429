package strcore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/strcore/internal/common"
	"github.com/rawbytedev/strcore/pkg/owner"
)

var ErrInvalidOptions = errors.New("strcore: invalid options")

type Options struct {
	// GrowthFactor scales a buffer's capacity when a Builder outgrows it.
	GrowthFactor float64 `yaml:"growth_factor"`
	// MinCapacity is the smallest capacity allocated for non-empty text.
	MinCapacity int `yaml:"min_capacity"`

	// Logger receives debug events for copying paths. Nil discards.
	Logger *slog.Logger `yaml:"-"`
}

func DefaultOptions() Options {
	return Options{GrowthFactor: 2, MinCapacity: 16}
}

func (o Options) Validate() error {
	if o.GrowthFactor < 1 {
		return fmt.Errorf("%w: growth_factor %v < 1", ErrInvalidOptions, o.GrowthFactor)
	}
	if o.MinCapacity < 0 {
		return fmt.Errorf("%w: min_capacity %d < 0", ErrInvalidOptions, o.MinCapacity)
	}
	return nil
}

// ParseOptions decodes YAML on top of DefaultOptions.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("strcore: parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("strcore: load options: %w", err)
	}
	return ParseOptions(data)
}

// Allocator creates native strings and builders under one set of
// Options.
type Allocator struct {
	Opts Options
	log  *slog.Logger
}

// Default backs the package-level constructors.
var Default = NewAllocator(DefaultOptions())

// NewAllocator returns an allocator for opts. Invalid fields fall back
// to their defaults.
func NewAllocator(opts Options) *Allocator {
	def := DefaultOptions()
	if opts.GrowthFactor < 1 {
		opts.GrowthFactor = def.GrowthFactor
	}
	if opts.MinCapacity < 0 {
		opts.MinCapacity = def.MinCapacity
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Allocator{Opts: opts, log: log}
}

func (a *Allocator) capacityFor(n int) int {
	if n == 0 {
		return 0
	}
	return max(n, a.Opts.MinCapacity)
}

// grow returns the capacity to use when a buffer of capacity old must
// hold need units.
func (a *Allocator) grow(old, need int) int {
	c := int(float64(old) * a.Opts.GrowthFactor)
	return max(c, need, a.Opts.MinCapacity)
}

// New copies s into an owned buffer, 8-bit when s is ASCII.
func (a *Allocator) New(s string) String {
	n, ascii := common.UTF16Len(s)
	if n == 0 {
		return String{}
	}
	if ascii {
		b := owner.NewNarrow(a.capacityFor(n))
		must(b.AppendBytes([]byte(s)))
		return native(b, 0, n)
	}
	b := owner.NewWide(a.capacityFor(n))
	must(b.AppendUnits(utf16Encode(s, n)))
	return native(b, 0, n)
}

// FromUTF16 copies u into an owned buffer, packing it to 8 bits when
// every unit is ASCII.
func (a *Allocator) FromUTF16(u []uint16) String {
	if len(u) == 0 {
		return String{}
	}
	var b *owner.Buffer
	if common.IsASCIIUnits(u) {
		b = owner.NewNarrow(a.capacityFor(len(u)))
	} else {
		b = owner.NewWide(a.capacityFor(len(u)))
	}
	must(b.AppendUnits(u))
	return native(b, 0, len(u))
}

func (a *Allocator) FromRunes(r []rune) String { return a.New(string(r)) }
