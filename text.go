package digitring

import (
	"io"
	"os"

	"golang.org/x/xerrors"
)

// MarshalText implements encoding.TextMarshaler with the canonical decimal
// numeral.
func (r *Ring) MarshalText() ([]byte, error) {
	return []byte(r.DecimalString()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It parses strictly, like
// ParseDecimal, and keeps the receiver's base; a zero Ring gets DefaultBase.
func (r *Ring) UnmarshalText(text []byte) error {
	v, err := parseDecimal(string(text))
	if err != nil {
		return err
	}
	r.lazyInit()
	r.setValue(v)
	return nil
}

// ReadDecimal reads a whole decimal numeral from rd.
func ReadDecimal(rd io.Reader, opts ...Option) (*Ring, error) {
	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, xerrors.Errorf("reading numeral: %w", err)
	}
	return ParseDecimal(string(b), opts...)
}

// WriteDecimal writes the decimal numeral verbatim, without a trailing
// newline.
func (r *Ring) WriteDecimal(w io.Writer) error {
	_, err := io.WriteString(w, r.DecimalString())
	return err
}

// LoadFile reads a ring from a UTF-8 text file holding a decimal numeral.
func LoadFile(path string, opts ...Option) (*Ring, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ReadDecimal(f, opts...)
	if err != nil {
		return nil, xerrors.Errorf("loading %s: %w", path, err)
	}
	log.Debugw("loaded ring", "path", path, "digits", r.size, "base", r.base)
	return r, nil
}

// SaveFile writes the ring's decimal numeral to path, replacing the file.
func (r *Ring) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WriteDecimal(f); err != nil {
		f.Close()
		return xerrors.Errorf("saving %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Debugw("saved ring", "path", path, "digits", r.size)
	return nil
}
