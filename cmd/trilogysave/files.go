package main

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/goopsie/trilogySaveTools/pkg/backup"
	"github.com/goopsie/trilogySaveTools/pkg/save"
)

// readSave loads and decodes the save at path.
func readSave(path string) (*save.Save, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read save")
	}
	opts := append(cfg.Options(), save.WithFileName(path))
	s, err := save.Deserialize(data, opts...)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decode %s", path)
	}
	return s, data, nil
}

// writeSave encodes s and replaces path with the result.
func writeSave(path string, s *save.Save) error {
	data, err := save.Serialize(s)
	if err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return writeFile(path, data)
}

// writeFile writes through a temporary file so that a failed write never
// leaves a truncated save behind.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}

func openStore() (*backup.Store, error) {
	if err := os.MkdirAll(cfg.Backup.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create backup dir")
	}
	st, err := backup.Open(cfg.Backup.DB(), backup.WithCompressionLevel(cfg.Backup.Level))
	if err != nil {
		return nil, errors.Wrap(err, "backup store")
	}
	return st, nil
}

// snapshot stores data, the current contents of path, unless backups are
// disabled, then trims old snapshots to the configured limit.
func snapshot(path string, data []byte, format save.Format, note string) error {
	if cfg.Backup.Disable {
		glog.V(1).Infof("backups disabled, not saving %s", path)
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "backup")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	if _, err := st.Put(abs, data, format.String(), note); err != nil {
		return errors.Wrap(err, "backup")
	}
	if cfg.Backup.Keep > 0 {
		if _, err := st.Prune(cfg.Backup.Keep); err != nil {
			return errors.Wrap(err, "prune backups")
		}
	}
	return nil
}
