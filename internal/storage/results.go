// Package storage reads results streams back and archives completed runs.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/solarsys/internal/nbody"
)

var ErrMalformedLine = errors.New("storage: malformed trajectory line")

// ReadTrajectory parses "x y z" lines as written in tracked mode. Blank
// lines are skipped; trailing columns beyond the third are ignored so trace
// files can be read too.
func ReadTrajectory(r io.Reader) ([]nbody.Vector3, error) {
	sc := bufio.NewScanner(r)
	points := make([]nbody.Vector3, 0, 256)
	line := 0

	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedLine, line, len(fields))
		}

		var xyz [3]float64
		for i := range xyz {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, line, err)
			}
			xyz[i] = v
		}
		points = append(points, nbody.Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func LoadTrajectory(path string) ([]nbody.Vector3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrajectory(f)
}
