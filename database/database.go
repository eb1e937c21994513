package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zilswap/xbridge/database/models"
	"github.com/zilswap/xbridge/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	transfersCollection = "bridge_transfers"

	defaultTimeout = 10 * time.Second
)

// Store is the durable, mergeable collection of bridge transfer records.
// It exclusively owns the authoritative copy; every other component works on
// snapshots and submits merge-updates back through Upsert.
type Store struct {
	client       *mongo.Client
	databaseName string
	logger       *slog.Logger
}

type StoreOpts struct {
	URI          string
	DatabaseName string
	Logger       *slog.Logger
}

func NewStore(opts StoreOpts) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Store{
		client:       client,
		databaseName: opts.DatabaseName,
		logger:       opts.Logger,
	}, nil
}

func (s *Store) collection() *mongo.Collection {
	return s.client.Database(s.databaseName).Collection(transfersCollection)
}

func (s *Store) CreateIndexes(ctx context.Context) error {
	_, err := s.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "source_tx_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "network", Value: 1}}},
		{Keys: bson.D{{Key: "dst_chain", Value: 1}}},
		{Keys: bson.D{{Key: "destination_tx_hash", Value: 1}}},
		{Keys: bson.D{{Key: "dismissed_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create transfer indexes: %w", err)
	}
	return nil
}

// Upsert merges each incoming record onto any stored record sharing its
// source tx hash, inserting otherwise. Incoming fields win on conflict except
// for the immutable ones guarded by MergeTransfer, which makes the operation
// idempotent and safe to call redundantly from the submitter and any watcher.
func (s *Store) Upsert(ctx context.Context, transfers []models.BridgeTransfer) error {
	for _, transfer := range transfers {
		if transfer.SourceTxHash == "" {
			return fmt.Errorf("transfer has no source tx hash")
		}
		if err := s.upsertOne(ctx, transfer); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) upsertOne(ctx context.Context, transfer models.BridgeTransfer) error {
	filter := bson.D{
		{Key: "source_tx_hash", Value: transfer.SourceTxHash},
		{Key: "network", Value: string(transfer.Network)},
	}

	// read only to detect immutable-field conflicts; the write below never
	// depends on this snapshot, so a concurrent $set cannot be lost
	var skip []string
	var existing models.TransferDoc
	err := s.collection().FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		_, conflicts := MergeTransfer(models.DecodeTransfer(existing), transfer)
		for _, c := range conflicts {
			s.logger.Error("ignoring conflicting merge field",
				"sourceTxHash", transfer.SourceTxHash, "field", c)
			skip = append(skip, c)
		}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to look up transfer %s: %w", transfer.SourceTxHash, err)
	}

	update := bson.D{{Key: "$set", Value: updateFields(models.EncodeTransfer(transfer), skip...)}}
	_, err = s.collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// lost the insert race; the winner's document now matches the filter
		_, err = s.collection().UpdateOne(ctx, filter, update)
	}
	if err != nil {
		return fmt.Errorf("failed to upsert transfer %s: %w", transfer.SourceTxHash, err)
	}
	return nil
}

// updateFields builds the $set document from the fields actually present on
// the incoming record. Absent fields stay out of the update entirely, so
// writers only ever touch what they set, and zero decimals never clobber a
// stored value, matching MergeTransfer.
func updateFields(d models.TransferDoc, skip ...string) bson.D {
	skipped := func(key string) bool {
		for _, s := range skip {
			if s == key {
				return true
			}
		}
		return false
	}

	// source_tx_hash is always present, which also keeps $set non-empty
	set := bson.D{{Key: "source_tx_hash", Value: d.SourceTxHash}}
	add := func(key, value string) {
		if value == "" || skipped(key) {
			return
		}
		set = append(set, bson.E{Key: key, Value: value})
	}

	add("src_chain", d.SourceChain)
	add("dst_chain", d.DestinationChain)
	add("network", d.Network)
	add("src_addr", d.SourceAddress)
	add("dst_addr", d.DestinationAddress)
	add("src_token", d.SourceToken)
	add("dst_token", d.DestinationToken)
	if d.WithdrawFee != "0" {
		add("withdraw_fee", d.WithdrawFee)
	}
	if d.InputAmount != "0" {
		add("input_amount", d.InputAmount)
	}
	add("approval_tx_hash", d.ApprovalTxHash)
	add("deposit_confirmed_at", d.DepositConfirmedAt)
	add("destination_tx_hash", d.DestinationTxHash)
	add("destination_confirmed_at", d.DestinationConfirmedAt)
	add("dismissed_at", d.DismissedAt)
	add("dispatched_at", d.DispatchedAt)
	if d.SourceConfirmations > 0 && !skipped("source_confirmations") {
		set = append(set, bson.E{Key: "source_confirmations", Value: d.SourceConfirmations})
	}
	if d.Recovered {
		set = append(set, bson.E{Key: "recovered", Value: true})
	}
	return set
}

// List returns every non-dismissed transfer for the network, newest first.
// Records that fail to decode are skipped rather than failing the read.
func (s *Store) List(ctx context.Context, network types.Network) ([]models.BridgeTransfer, error) {
	return s.list(ctx, bson.D{
		{Key: "network", Value: string(network)},
		{Key: "dismissed_at", Value: bson.D{{Key: "$in", Value: bson.A{nil, ""}}}},
	})
}

// ListAll includes dismissed transfers, for history views.
func (s *Store) ListAll(ctx context.Context, network types.Network) ([]models.BridgeTransfer, error) {
	return s.list(ctx, bson.D{{Key: "network", Value: string(network)}})
}

// ListPending returns transfers for the network still awaiting their
// destination leg on the given chain. The watcher's demand signal.
func (s *Store) ListPending(ctx context.Context, network types.Network, dstChain types.Blockchain) ([]models.BridgeTransfer, error) {
	return s.list(ctx, bson.D{
		{Key: "network", Value: string(network)},
		{Key: "dst_chain", Value: string(dstChain)},
		{Key: "destination_tx_hash", Value: bson.D{{Key: "$in", Value: bson.A{nil, ""}}}},
		{Key: "dismissed_at", Value: bson.D{{Key: "$in", Value: bson.A{nil, ""}}}},
	})
}

func (s *Store) list(ctx context.Context, filter bson.D) ([]models.BridgeTransfer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dispatched_at", Value: -1}})

	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer cursor.Close(ctx)

	var transfers []models.BridgeTransfer
	for cursor.Next(ctx) {
		var doc models.TransferDoc
		if err := cursor.Decode(&doc); err != nil {
			s.logger.Warn("skipping undecodable transfer record", "error", err)
			continue
		}
		transfers = append(transfers, models.DecodeTransfer(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transfers: %w", err)
	}

	return transfers, nil
}

// Dismiss flags transfers as hidden. Nothing is removed physically.
func (s *Store) Dismiss(ctx context.Context, transfers []models.BridgeTransfer) error {
	now := time.Now().UTC().Format(models.TimeLayout)
	for _, transfer := range transfers {
		if transfer.SourceTxHash == "" {
			continue
		}
		_, err := s.collection().UpdateOne(ctx,
			bson.D{
				{Key: "source_tx_hash", Value: transfer.SourceTxHash},
				{Key: "network", Value: string(transfer.Network)},
			},
			bson.D{{Key: "$set", Value: bson.D{{Key: "dismissed_at", Value: now}}}},
		)
		if err != nil {
			return fmt.Errorf("failed to dismiss transfer %s: %w", transfer.SourceTxHash, err)
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
