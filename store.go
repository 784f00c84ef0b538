package digitring

import (
	"context"

	cid "github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/xerrors"

	"github.com/dimoria/digitring/internal"
)

// Flush writes the ring to bs as a single CBOR block and returns its CID.
// Equal rings in the same base always produce the same CID.
func (r *Ring) Flush(ctx context.Context, bs cbor.IpldStore) (cid.Cid, error) {
	c, err := bs.Put(ctx, r.toInternal())
	if err != nil {
		return cid.Undef, xerrors.Errorf("writing ring block: %w", err)
	}
	log.Debugw("flushed ring", "cid", c, "digits", r.size, "base", r.base)
	return c, nil
}

// LoadRing reads the ring stored under c. Options are accepted for symmetry
// with New; a UseBase option must match the stored base.
func LoadRing(ctx context.Context, bs cbor.IpldStore, c cid.Cid, opts ...Option) (*Ring, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	var nd internal.Ring
	if err := bs.Get(ctx, c, &nd); err != nil {
		return nil, xerrors.Errorf("loading ring %s: %w", c, err)
	}
	r := newRing(cfg.base)
	if err := r.fromInternal(&nd); err != nil {
		return nil, xerrors.Errorf("loading ring %s: %w", c, err)
	}
	if cfg.baseSet && r.base != cfg.base {
		return nil, invalidArgumentError("ring %s has base %d, expected %d", c, r.base, cfg.base)
	}
	return r, nil
}
