package pkg

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/ulikunitz/xz"
)

// PackArchive recursively bundles the contents of dir into a .tar.xz archive
// at filename. Entry names are stored relative to dir.
func PackArchive(filename, dir string) error {
	hdl, err := os.Create(filename)
	if err != nil {
		return eris.Wrapf(err, "Failed to create %s", filename)
	}

	xzWriter, err := xz.NewWriter(hdl)
	if err != nil {
		hdl.Close()
		return eris.Wrapf(err, "Failed to initialize compressor for %s", filename)
	}

	tarWriter := tar.NewWriter(xzWriter)
	err = packDirectory(tarWriter, dir)
	if err == nil {
		err = tarWriter.Close()
	} else {
		tarWriter.Close()
	}

	if err == nil {
		err = xzWriter.Close()
	} else {
		xzWriter.Close()
	}

	if err != nil {
		hdl.Close()
		return err
	}

	return hdl.Close()
}

func packDirectory(writer *tar.Writer, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return eris.Wrapf(err, "Failed to walk %s", path)
		}

		if info.IsDir() {
			return nil
		}

		if !info.Mode().IsRegular() {
			// sockets, pipes and the like can't be archived
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return eris.Wrapf(err, "Failed to resolve %s", path)
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return eris.Wrapf(err, "Failed to build header for %s", path)
		}
		header.Name = filepath.ToSlash(relPath)

		err = writer.WriteHeader(header)
		if err != nil {
			return eris.Wrapf(err, "Failed to write header for %s", path)
		}

		f, err := os.Open(path)
		if err != nil {
			return eris.Wrapf(err, "Failed to open file %s", path)
		}

		_, err = io.Copy(writer, f)
		f.Close()
		if err != nil {
			return eris.Wrapf(err, "Failed to pack file %s", path)
		}

		return nil
	})
}
