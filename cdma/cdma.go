// CDMASIM - A CDMA air-interface simulator using Walsh-Hadamard spreading codes.
// Copyright (C) 2015 Douglas Hall
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cdma

import (
	"fmt"
	"math"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"

	"github.com/bemasher/cdmasim/bitpack"
	"github.com/bemasher/cdmasim/walsh"
)

var (
	ErrNoStations    = xerrors.New("no stations registered")
	ErrOutOfSequence = xerrors.New("operation out of sequence")
)

// A run moves through three phases in order: registration, code
// assignment, transmission. Each transition is one-way.
type phase int

const (
	registration phase = iota
	assigned
	transmitted
)

// A Station owns its transmitted word, the bit sequence derived from it,
// and the spreading code assigned during code assignment.
type Station struct {
	Name string
	Word string

	bits    []byte
	code    walsh.Code
	decoded []byte
}

// Engine owns the set of stations and performs the spread, superpose and
// correlate cycle over them. Station order is insertion order; it
// determines which matrix row each station receives.
type Engine struct {
	stations []*Station
	index    map[string]int

	maxLen int
	phase  phase
}

func NewEngine() *Engine {
	return &Engine{index: make(map[string]int)}
}

// AddStation registers a station under name with the given word. A name
// seen before keeps its insertion position and takes the new word, so the
// last write wins. Valid only before code assignment.
func (e *Engine) AddStation(name, word string) error {
	if e.phase != registration {
		return xerrors.Errorf("cdma: add station %q after code assignment: %w", name, ErrOutOfSequence)
	}

	bits, err := bitpack.TextToBits(word)
	if err != nil {
		return err
	}

	s := &Station{Name: name, Word: word, bits: bits}
	if idx, ok := e.index[name]; ok {
		e.stations[idx] = s
	} else {
		e.index[name] = len(e.stations)
		e.stations = append(e.stations, s)
	}

	// An overwrite can shrink a word, so recompute rather than grow.
	e.maxLen = 0
	for _, s := range e.stations {
		if len(s.bits) > e.maxLen {
			e.maxLen = len(s.bits)
		}
	}

	return nil
}

// GenerateWalshCodes builds a Walsh matrix just large enough for the
// registered stations and assigns row i to the i-th station by insertion
// order. Rows beyond the station count are discarded. Called exactly once
// per run.
func (e *Engine) GenerateWalshCodes() error {
	if e.phase != registration {
		return xerrors.Errorf("cdma: codes already assigned: %w", ErrOutOfSequence)
	}
	if len(e.stations) == 0 {
		return xerrors.Errorf("cdma: code assignment: %w", ErrNoStations)
	}

	order := int(math.Ceil(math.Log2(float64(len(e.stations)))))
	m, err := walsh.NewMatrix(order)
	if err != nil {
		return err
	}

	for idx, s := range e.stations {
		s.code = m[idx]
	}

	e.phase = assigned
	return nil
}

// TransmitData runs every time slot up to the longest registered bit
// sequence. At each slot the contributions of all stations still
// transmitting are superposed into one composite signal, then every
// station correlates the composite against its own code and records the
// sign as its recovered bit. Called exactly once, after code assignment.
func (e *Engine) TransmitData() error {
	if e.phase != assigned {
		return xerrors.Errorf("cdma: transmit before code assignment: %w", ErrOutOfSequence)
	}

	composite := make([]float64, len(e.stations[0].code))

	for t := 0; t < e.maxLen; t++ {
		for idx := range composite {
			composite[idx] = 0
		}

		// Spread: bit 1 maps to +1, bit 0 to -1, scaling the station's
		// code into the composite. Stations shorter than t slots are
		// silent, not padded.
		for _, s := range e.stations {
			if t >= len(s.bits) {
				continue
			}
			floats.AddScaled(composite, float64(int(s.bits[t])<<1-1), s.code)
		}

		// Correlate: orthogonality cancels every other station's
		// contribution, leaving the sign of this station's own chip.
		for _, s := range e.stations {
			var bit byte
			if floats.Dot(composite, s.code) > 0 {
				bit = 1
			}
			s.decoded = append(s.decoded, bit)
		}
	}

	e.phase = transmitted
	return nil
}

// A DecodedWord is one station's recovered transmission.
type DecodedWord struct {
	Name string `xml:",attr"`
	Text string `xml:",attr"`

	bits []byte
}

func (w DecodedWord) String() string {
	return fmt.Sprintf("%s says: %s", w.Name, w.Text)
}

// BitString renders the recovered bits as a run of ASCII 0s and 1s.
func (w DecodedWord) BitString() string {
	buf := make([]byte, len(w.bits))
	for idx, bit := range w.bits {
		buf[idx] = '0' + bit
	}
	return string(buf)
}

func (w DecodedWord) Record() (r []string) {
	r = append(r, w.Name, w.Text, w.BitString())
	return
}

// DecodedWords converts each station's recovered bits back to text, in
// insertion order. A station that stopped transmitting before the longest
// word still decoded a bit at every slot; only the station's own length
// is kept so its byte boundaries line up.
func (e *Engine) DecodedWords() ([]DecodedWord, error) {
	if e.phase != transmitted {
		return nil, xerrors.Errorf("cdma: decode before transmission: %w", ErrOutOfSequence)
	}

	words := make([]DecodedWord, 0, len(e.stations))
	for _, s := range e.stations {
		bits := s.decoded[:len(s.bits)]

		text, err := bitpack.BitsToText(bits)
		if err != nil {
			return nil, err
		}

		words = append(words, DecodedWord{Name: s.Name, Text: text, bits: bits})
	}

	return words, nil
}

// StationCount reports the number of registered stations.
func (e *Engine) StationCount() int {
	return len(e.stations)
}

// CodeLength reports the common spreading code length, 0 before code
// assignment.
func (e *Engine) CodeLength() int {
	if e.phase == registration {
		return 0
	}
	return len(e.stations[0].code)
}

// Slots reports how many time slots a transmission spans.
func (e *Engine) Slots() int {
	return e.maxLen
}
