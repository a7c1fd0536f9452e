package bsor

import (
	"errors"
	"fmt"
)

// Validate reports what would make rp decode differently from how it is
// encoded: a note whose CutInfo presence disagrees with its event type, a
// string ReadString would refuse, or a player name the platform length would
// not terminate. All problems are returned joined. Encode does not call it.
func (rp *Replay) Validate() error {
	var errs []error
	if info := rp.Info; info != nil {
		for _, f := range infoText(info) {
			if f.name != "playerName" && len(f.value) > MaxStringLength {
				errs = append(errs, fmt.Errorf("%w: info.%s is %d bytes", ErrStringTooLong, f.name, len(f.value)))
			}
		}
		if info.PlayerName != "" && !isNameBoundary(int32(len(info.Platform))) {
			errs = append(errs, fmt.Errorf("%w: platform %q is %d bytes", ErrNameBoundary, info.Platform, len(info.Platform)))
		}
	}
	for i := range rp.Notes {
		note := &rp.Notes[i]
		if note.IsCut() != (note.CutInfo != nil) {
			errs = append(errs, fmt.Errorf("%w: notes[%d] has event type %d", ErrCutInfoMismatch, i, note.EventType))
		}
	}
	return errors.Join(errs...)
}

// ValidateStrict is Validate plus a check that every section is present, as
// a strict Decoder requires.
func (rp *Replay) ValidateStrict() error {
	errs := []error{rp.Validate()}
	for s := SectionInfo; s < SectionCount; s++ {
		if !rp.Has(s) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSection, s))
		}
	}
	return errors.Join(errs...)
}
