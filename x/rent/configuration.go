package rent

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

// PackageName is the key the configuration is stored and read from genesis
// under.
const PackageName = "rent"

// Configuration holds the parameters of the rent exemption formula.
type Configuration struct {
	// LamportsPerByteYear is the rent of a single byte for a year.
	LamportsPerByteYear uint64 `json:"lamports_per_byte_year"`
	// ExemptionYears is how many years of rent must be deposited.
	ExemptionYears uint64 `json:"exemption_years"`
	// AccountOverhead is added to the size of every record.
	AccountOverhead uint64 `json:"account_overhead"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration returns the configuration used when genesis does not
// declare one.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		LamportsPerByteYear: 3480,
		ExemptionYears:      2,
		AccountOverhead:     128,
	}
}

// Validate implements gconf.Configuration.
func (c *Configuration) Validate() error {
	var errs error
	if c.ExemptionYears == 0 {
		errs = errors.AppendField(errs, "ExemptionYears",
			errors.Wrap(errors.ErrInput, "must be a positive value"))
	}
	return errs
}

// Marshal implements bazaar.Persistent.
func (c *Configuration) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Uint64(1, c.LamportsPerByteYear).
		Uint64(2, c.ExemptionYears).
		Uint64(3, c.AccountOverhead).
		Marshal()
}

// Unmarshal implements bazaar.Persistent.
func (c *Configuration) Unmarshal(bz []byte) error {
	*c = Configuration{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			c.LamportsPerByteYear, err = v.Uint64()
		case 2:
			c.ExemptionYears, err = v.Uint64()
		case 3:
			c.AccountOverhead, err = v.Uint64()
		}
		return err
	})
}

func loadConf(db bazaar.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, PackageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load rent configuration")
	}
	return &conf, nil
}
