package ports

import "github.com/embodied-nav/vln-sdk/domain/entities"

// DatasetParser turns raw dataset bytes into validated episodes.
type DatasetParser interface {
	Parse(data []byte) (*entities.Dataset, error)
}

// ConfigParser turns raw configuration bytes into a Config.
type ConfigParser interface {
	Parse(data []byte) (*entities.Config, error)
}
