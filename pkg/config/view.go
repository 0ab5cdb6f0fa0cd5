package config

import (
	"dealscope/prospector/pkg/prospect/storage"
	"dealscope/prospector/pkg/viewstate"
)

// InitialState returns the view state a new session starts from.
func (v ViewConfig) InitialState() (viewstate.State, error) {
	group, err := viewstate.ParseGroupBy(v.DefaultGroupBy)
	if err != nil {
		return viewstate.State{}, err
	}
	actions := []viewstate.Action{viewstate.SetGroupBy(group)}
	if len(v.DefaultColumns) > 0 {
		actions = append(actions, viewstate.SetColumns(v.DefaultColumns))
	}
	return viewstate.Apply(viewstate.Default(), actions...)
}

// StorageConfig converts the dataset section into storage options.
func (d DatasetConfig) StorageConfig() storage.Config {
	return storage.Config{
		Kind: d.Source,
		Path: d.Path,
		SQLite: storage.SQLiteConfig{
			Path:        d.SQLite.Path,
			Driver:      d.SQLite.Driver,
			BusyTimeout: d.SQLite.BusyTimeout,
		},
	}
}
