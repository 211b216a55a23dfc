package compiler

import (
	"bufio"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"time"
)

// ReadSource reads AxonScript source from a file path, or from stdin if
// path is empty. Reading from stdin waits a short period for input before
// giving up, mirroring the teacher's ReadSource (src/util/io.go).
func ReadSource(path string) (string, error) {
	if len(path) > 0 {
		b, err := ioutil.ReadFile(path)
		return string(b), err
	}

	c := make(chan string)
	cerr := make(chan error)
	go func(c chan string, cerr chan error) {
		defer close(c)
		defer close(cerr)
		reader := bufio.NewReader(os.Stdin)
		text, err := reader.ReadString(0)
		if err == nil || err == io.EOF {
			c <- text
		} else {
			cerr <- err
		}
	}(c, cerr)

	select {
	case <-time.After(500 * time.Millisecond):
		return "", errors.New("expected input from stdin, got none")
	case s := <-c:
		return s, nil
	case err := <-cerr:
		return "", err
	}
}
