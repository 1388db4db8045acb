/*
CDMASIM simulates a simplified CDMA air interface: each registered station
spreads its word with a Walsh-Hadamard code, all spread signals are summed
into one composite signal per time slot, and every receiver recovers its
own bits by correlating the composite against its own code.

Stations are read from standard input, one "<name> <word>" pair per line,
until a blank line or "exit" is seen. Lines that don't split into exactly
two fields are reported and skipped.

Command-line Flags:

	-stations=""

Registers stations from a YAML file before reading standard input. The
file is a list of entries with "name" and "word" keys.

	-format="plain"

Sets the decoded word output format: plain, csv, json, or xml. Plain text
prints one colored line per station:

	<name> says: <text>

	-verbose=false

Logs station count, code length and slot count as each phase completes.

	-version=false

Displays build date and commit hash.

All flags may also be set through environment variables prefixed with
CDMASIM_, e.g. CDMASIM_FORMAT=json. Command-line values take precedence.
*/
package main
