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

package main

import (
	"encoding/json"
	"encoding/xml"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/bemasher/cdmasim/cdma"
	"github.com/bemasher/cdmasim/csv"
)

var stationFilename = flag.String("stations", "", "yaml file of stations to register before reading input")

var format = flag.String("format", "plain", "decoded word output format: plain, csv, json, or xml")

var verbose = flag.Bool("verbose", false, "log engine details for each phase")

var version = flag.Bool("version", false, "display build date and commit hash")

var encoder Encoder

func EnvOverride() {
	flag.VisitAll(func(f *flag.Flag) {
		envName := "CDMASIM_" + strings.ToUpper(f.Name)
		flagValue := os.Getenv(envName)
		if flagValue != "" {
			if err := flag.Set(f.Name, flagValue); err != nil {
				log.Printf(
					"Environment variable %q failed to override flag %q with value %q: %q\n",
					envName, f.Name, flagValue, err,
				)
			} else {
				log.Printf("Environment variable %q overrides flag %q with %q\n", envName, f.Name, flagValue)
			}
		}
	})
}

func HandleFlags() {
	*format = strings.ToLower(*format)
	switch *format {
	case "plain":
		encoder = &PlainEncoder{}
	case "csv":
		encoder = csv.NewEncoder(os.Stdout)
	case "json":
		encoder = json.NewEncoder(os.Stdout)
	case "xml":
		encoder = xml.NewEncoder(os.Stdout)
	default:
		log.Fatalf("invalid output format: %q", *format)
	}
}

// JSON, XML and CSV encoders all implement this interface so we can
// simplify output formatting.
type Encoder interface {
	Encode(interface{}) error
}

var palette = []*color.Color{
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
}

// A PlainEncoder prints one line per decoded word, cycling a color per
// station.
type PlainEncoder struct {
	next int
}

func (pe *PlainEncoder) Encode(msg interface{}) (err error) {
	if w, ok := msg.(cdma.DecodedWord); ok {
		c := palette[pe.next%len(palette)]
		pe.next++
		_, err = c.Println(w.String())
		return
	}

	_, err = fmt.Println(msg)
	return
}
