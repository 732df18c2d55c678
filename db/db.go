package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tirthyatra/data"
	"tirthyatra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

// Itineraries is the record store shared by the handlers. It is set once by Init
// and never written afterwards.
var Itineraries *Store

var (
	ErrMissingID   = errors.New("itinerary without id")
	ErrDuplicateID = errors.New("duplicate itinerary id")
)

// Options selects where records are loaded from. MongoURI wins over File, and
// with neither set the embedded records are used.
type Options struct {
	File            string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Store is a read-only, ordered collection of itineraries.
type Store struct {
	records []models.Itinerary
	byID    map[string]int
}

func NewStore(records []models.Itinerary) (*Store, error) {
	s := &Store{
		records: make([]models.Itinerary, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for i, it := range records {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingID)
		}
		if _, dup := s.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, it.ID)
		}
		it.Normalize()
		s.byID[it.ID] = len(s.records)
		s.records = append(s.records, it)
	}
	return s, nil
}

// All returns the records in their original order. Callers must not modify them.
func (s *Store) All() []models.Itinerary {
	return s.records
}

func (s *Store) Len() int {
	return len(s.records)
}

// Find looks a record up by id.
func (s *Store) Find(id string) (models.Itinerary, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Itinerary{}, false
	}
	return s.records[i], true
}

// IDs lists every record id in order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.records))
	for i, it := range s.records {
		ids[i] = it.ID
	}
	return ids
}

// Init loads the records once and publishes them through Itineraries.
func Init(ctx context.Context, opts Options) error {
	var (
		records []models.Itinerary
		source  string
		err     error
	)
	switch {
	case opts.MongoURI != "":
		source = "mongo:" + opts.MongoDatabase + "/" + opts.MongoCollection
		records, err = LoadMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
	case opts.File != "":
		source = opts.File
		records, err = LoadFile(opts.File)
	default:
		source = "embedded"
		records, err = DecodeJSON(data.Itineraries)
	}
	if err != nil {
		return fmt.Errorf("load itineraries from %s: %w", source, err)
	}

	store, err := NewStore(records)
	if err != nil {
		return fmt.Errorf("load itineraries from %s: %w", source, err)
	}
	Itineraries = store
	log.Printf("[db] loaded %d itineraries from %s", store.Len(), source)
	return nil
}

func DecodeJSON(b []byte) ([]models.Itinerary, error) {
	var records []models.Itinerary
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func DecodeYAML(b []byte) ([]models.Itinerary, error) {
	var records []models.Itinerary
	if err := yaml.Unmarshal(b, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadFile reads a JSON or YAML record file, picked by extension.
func LoadFile(path string) ([]models.Itinerary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(b)
	default:
		return DecodeJSON(b)
	}
}

// LoadMongo reads the whole collection in insertion order and disconnects.
func LoadMongo(ctx context.Context, uri, database, collection string) ([]models.Itinerary, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("[db] mongo disconnect: %v", err)
		}
	}()

	coll := client.Database(database).Collection(collection)
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAndDecode[models.Itinerary](ctx, coll, bson.M{}, opts)
}

func findAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
