// Package seed loads YAML fixtures of customers, restaurants and reviews and
// creates them through the services. Reviews reference their parents by key.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"reviewapi/internal/logging"
	"reviewapi/internal/service"
)

// Fixture is the YAML document shape.
//
//	customers:
//	  - {key: ada, first_name: Ada, last_name: Lovelace}
//	restaurants:
//	  - {key: noma, name: Noma, price: 4}
//	reviews:
//	  - {customer: ada, restaurant: noma, star_rating: 9}
type Fixture struct {
	Customers   []CustomerFixture   `yaml:"customers"`
	Restaurants []RestaurantFixture `yaml:"restaurants"`
	Reviews     []ReviewFixture     `yaml:"reviews"`
}

type CustomerFixture struct {
	Key       string `yaml:"key"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

type RestaurantFixture struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
}

type ReviewFixture struct {
	Customer   string `yaml:"customer"`
	Restaurant string `yaml:"restaurant"`
	StarRating int    `yaml:"star_rating"`
}

var (
	ErrEmptyKey     = errors.New("fixture key is empty")
	ErrDuplicateKey = errors.New("duplicate fixture key")
	ErrUnknownKey   = errors.New("unknown fixture key")
)

// LoadFile reads and validates a fixture file.
func LoadFile(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a fixture, rejecting unknown fields, and validates its keys.
func Parse(raw []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that keys are present and unique per kind and that every
// review references declared keys.
func (f *Fixture) Validate() error {
	customers := make(map[string]struct{}, len(f.Customers))
	for i, c := range f.Customers {
		if err := addKey(customers, c.Key, "customers", i); err != nil {
			return err
		}
	}
	restaurants := make(map[string]struct{}, len(f.Restaurants))
	for i, r := range f.Restaurants {
		if err := addKey(restaurants, r.Key, "restaurants", i); err != nil {
			return err
		}
	}
	for i, v := range f.Reviews {
		if _, ok := customers[v.Customer]; !ok {
			return fmt.Errorf("reviews[%d].customer %q: %w", i, v.Customer, ErrUnknownKey)
		}
		if _, ok := restaurants[v.Restaurant]; !ok {
			return fmt.Errorf("reviews[%d].restaurant %q: %w", i, v.Restaurant, ErrUnknownKey)
		}
	}
	return nil
}

func addKey(seen map[string]struct{}, key, kind string, i int) error {
	if key == "" {
		return fmt.Errorf("%s[%d]: %w", kind, i, ErrEmptyKey)
	}
	if _, dup := seen[key]; dup {
		return fmt.Errorf("%s[%d] %q: %w", kind, i, key, ErrDuplicateKey)
	}
	seen[key] = struct{}{}
	return nil
}

// Result maps fixture keys to the ids the store assigned.
type Result struct {
	Customers   map[string]int64
	Restaurants map[string]int64
	Reviews     []int64
}

// Seeder applies fixtures through the service layer so the same validation
// and constraint handling applies as over HTTP.
type Seeder struct {
	customers   service.CustomerService
	restaurants service.RestaurantService
	reviews     service.ReviewService
	log         *logging.Logger
}

func New(customers service.CustomerService, restaurants service.RestaurantService, reviews service.ReviewService, log *logging.Logger) *Seeder {
	return &Seeder{customers: customers, restaurants: restaurants, reviews: reviews, log: log}
}

// Apply creates customers, then restaurants, then reviews. It stops at the first
// failure; rows created before it remain.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Customers:   make(map[string]int64, len(f.Customers)),
		Restaurants: make(map[string]int64, len(f.Restaurants)),
		Reviews:     make([]int64, 0, len(f.Reviews)),
	}

	for _, c := range f.Customers {
		created, err := s.customers.Create(ctx, c.FirstName, c.LastName)
		if err != nil {
			return res, fmt.Errorf("seed customer %q: %w", c.Key, err)
		}
		res.Customers[c.Key] = created.ID
	}
	for _, r := range f.Restaurants {
		created, err := s.restaurants.Create(ctx, r.Name, r.Price)
		if err != nil {
			return res, fmt.Errorf("seed restaurant %q: %w", r.Key, err)
		}
		res.Restaurants[r.Key] = created.ID
	}
	for i, v := range f.Reviews {
		created, err := s.reviews.Create(ctx, v.StarRating, res.Customers[v.Customer], res.Restaurants[v.Restaurant])
		if err != nil {
			return res, fmt.Errorf("seed reviews[%d]: %w", i, err)
		}
		res.Reviews = append(res.Reviews, created.ID)
	}

	s.log.Log(logging.Fields{
		"component":   "seed",
		"event":       "seed_applied",
		"status":      "success",
		"customers":   len(res.Customers),
		"restaurants": len(res.Restaurants),
		"reviews":     len(res.Reviews),
	})
	return res, nil
}
