package namespace

import "os"

func osExecutableForTest() (string, error) {
	return os.Executable()
}
