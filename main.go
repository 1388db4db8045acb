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
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/bemasher/cdmasim/bitpack"
	"github.com/bemasher/cdmasim/cdma"
)

var (
	buildTag   = "dev"     // v#.#.#
	buildDate  = "unknown" // date -u '+%Y-%m-%d'
	commitHash = "unknown" // git rev-parse HEAD
)

type stationEntry struct {
	Name string `yaml:"name"`
	Word string `yaml:"word"`
}

func loadStations(engine *cdma.Engine, filename string) error {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "reading station file")
	}

	var entries []stationEntry
	if err := yaml.Unmarshal(buf, &entries); err != nil {
		return errors.Wrap(err, "parsing station file")
	}

	for _, entry := range entries {
		if err := engine.AddStation(entry.Name, entry.Word); err != nil {
			return errors.Wrapf(err, "registering station %q", entry.Name)
		}
	}

	return nil
}

// readStations collects "<name> <word>" pairs line by line until a blank
// line or the token "exit". Malformed lines and words the codec rejects
// are reported without ending the loop; any other failure is fatal to the
// run.
func readStations(engine *cdma.Engine, input io.Reader, report io.Writer) error {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.EqualFold(line, "exit") {
			break
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Fprintf(report, "expected \"<name> <word>\", got %q\n", line)
			continue
		}

		err := engine.AddStation(fields[0], fields[1])
		switch {
		case err == nil:
		case xerrors.Is(err, bitpack.ErrCharRange):
			fmt.Fprintf(report, "station %q: %v\n", fields[0], err)
		default:
			return err
		}
	}

	return scanner.Err()
}

func main() {
	EnvOverride()
	flag.Parse()
	HandleFlags()

	if *version {
		fmt.Println("Build Tag: ", buildTag)
		fmt.Println("Build Date:", buildDate)
		fmt.Println("Commit:    ", commitHash)
		os.Exit(0)
	}

	if !*verbose {
		log.SetLevel(log.WarnLevel)
	}

	engine := cdma.NewEngine()

	if *stationFilename != "" {
		if err := loadStations(engine, *stationFilename); err != nil {
			log.Fatalf("%+v", err)
		}
	}

	if err := readStations(engine, os.Stdin, os.Stderr); err != nil {
		log.Fatalf("%+v", err)
	}

	if err := engine.GenerateWalshCodes(); err != nil {
		log.Fatalf("%+v", err)
	}
	log.WithFields(log.Fields{
		"stations":   engine.StationCount(),
		"codelength": engine.CodeLength(),
	}).Info("codes assigned")

	if err := engine.TransmitData(); err != nil {
		log.Fatalf("%+v", err)
	}
	log.WithField("slots", engine.Slots()).Info("transmission complete")

	words, err := engine.DecodedWords()
	if err != nil {
		log.Fatalf("%+v", err)
	}

	for _, w := range words {
		if err := encoder.Encode(w); err != nil {
			log.Fatal("Error encoding decoded word: ", err)
		}
	}
}
