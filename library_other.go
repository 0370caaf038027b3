//go:build !(darwin || freebsd || linux || windows)

package bullet

func openLibrary(path string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func closeLibrary(handle uintptr) error {
	return nil
}

func bindFunc(fptr any, addr uintptr) {}
