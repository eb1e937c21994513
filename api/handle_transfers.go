package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/zilswap/xbridge/bridge"
	"github.com/zilswap/xbridge/database/models"
	"github.com/zilswap/xbridge/registry"
	"github.com/zilswap/xbridge/types"
)

func (s *Server) handleTransfersGet(w http.ResponseWriter, r *http.Request) {
	// Get query parameters
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.ParseInt(r.URL.Query().Get("pageSize"), 10, 64)
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	status := r.URL.Query().Get("status")
	chain := types.Blockchain(r.URL.Query().Get("chain"))

	var transfers []models.BridgeTransfer
	if status == "" || status == string(types.StatusPending) || status == string(types.StatusComplete) {
		transfers, err = s.opts.Store.List(r.Context(), s.opts.Network)
	} else {
		transfers, err = s.opts.Store.ListAll(r.Context(), s.opts.Network)
	}
	if err != nil {
		ERROR(w, http.StatusInternalServerError, err)
		return
	}

	filtered := transfers[:0:0]
	for _, t := range transfers {
		if status != "" && status != "all" && string(t.Status()) != status {
			continue
		}
		if chain != "" && t.SourceChain != chain && t.DestinationChain != chain {
			continue
		}
		filtered = append(filtered, t)
	}

	total := int64(len(filtered))
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"transfers": encodeAll(filtered[start:end]),
		"total":     total,
		"page":      page,
		"pageSize":  pageSize,
	})
}

type submitRequest struct {
	SourceChain        string `json:"source_chain"`
	DestinationChain   string `json:"destination_chain"`
	TokenSymbol        string `json:"token_symbol"`
	Amount             string `json:"amount"`
	DestinationAddress string `json:"destination_address"`
}

func (s *Server) handleTransfersSubmit(w http.ResponseWriter, r *http.Request) {
	if s.opts.Submitter == nil {
		ERROR(w, http.StatusServiceUnavailable, types.ErrSignerRequired)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ERROR(w, http.StatusBadRequest, err)
		return
	}

	srcCfg, err := registry.Get(s.opts.Network, types.Blockchain(req.SourceChain))
	if err != nil {
		ERROR(w, http.StatusBadRequest, err)
		return
	}

	token, ok := srcCfg.TokenBySymbol(req.TokenSymbol)
	if !ok {
		ERROR(w, http.StatusBadRequest, types.ErrTokenNotRegistered)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ERROR(w, http.StatusBadRequest, err)
		return
	}

	record, err := s.opts.Submitter.Submit(r.Context(), bridge.SubmitRequest{
		SourceChain:        types.Blockchain(req.SourceChain),
		DestinationChain:   types.Blockchain(req.DestinationChain),
		Token:              token,
		Amount:             amount,
		DestinationAddress: req.DestinationAddress,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, types.ErrInsufficientValue) || errors.Is(err, types.ErrTokenNotRegistered) || errors.Is(err, types.ErrUnsupportedChain) {
			status = http.StatusBadRequest
		}
		ERROR(w, status, err)
		return
	}

	if err := s.opts.Store.Upsert(r.Context(), []models.BridgeTransfer{record}); err != nil {
		ERROR(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.opts.Watcher.EnsureListening(record.DestinationChain); err != nil {
		s.log.Error("failed to start gateway listener", "chain", record.DestinationChain, "error", err)
	}

	JSON(w, http.StatusCreated, models.EncodeTransfer(record))
}

type dismissRequest struct {
	SourceTxHashes []string `json:"source_tx_hashes"`
}

func (s *Server) handleTransfersDismiss(w http.ResponseWriter, r *http.Request) {
	var req dismissRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ERROR(w, http.StatusBadRequest, err)
		return
	}

	transfers := make([]models.BridgeTransfer, 0, len(req.SourceTxHashes))
	for _, hash := range req.SourceTxHashes {
		transfers = append(transfers, models.BridgeTransfer{
			SourceTxHash: hash,
			Network:      s.opts.Network,
		})
	}

	if err := s.opts.Store.Dismiss(r.Context(), transfers); err != nil {
		ERROR(w, http.StatusInternalServerError, err)
		return
	}

	// dismissal may have emptied a chain's pending set
	if err := s.opts.Watcher.Sync(r.Context()); err != nil {
		s.log.Error("failed to sync watchers", "error", err)
	}

	JSON(w, http.StatusOK, map[string]interface{}{"dismissed": len(transfers)})
}

// Sync re-arms watchers for every chain that still has transfers awaiting
// their destination leg, typically after a restart.
func (s *Server) handleTransfersSync(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Watcher.Sync(r.Context()); err != nil {
		ERROR(w, http.StatusInternalServerError, err)
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"synced": true})
}

type resumeRequest struct {
	Words              []string `json:"words"`
	DestinationAddress string   `json:"destination_address"`
}

// Resume reconstructs a stuck transfer from its interim mnemonic and arms a
// watcher for its destination leg.
func (s *Server) handleTransfersResume(w http.ResponseWriter, r *http.Request) {
	var req resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ERROR(w, http.StatusBadRequest, err)
		return
	}

	record, err := s.opts.Recovery.Recover(r.Context(), req.Words, req.DestinationAddress)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, types.ErrIncompletePhrase), errors.Is(err, types.ErrInvalidPhrase):
			status = http.StatusBadRequest
		case errors.Is(err, types.ErrTransferNotFound):
			status = http.StatusNotFound
		}
		ERROR(w, status, err)
		return
	}

	if err := s.opts.Store.Upsert(r.Context(), []models.BridgeTransfer{record}); err != nil {
		ERROR(w, http.StatusInternalServerError, err)
		return
	}

	// without a destination address the record cannot match any dispatch,
	// so a listener for it would never stand down
	if record.DestinationAddress != "" {
		if err := s.opts.Watcher.EnsureListening(record.DestinationChain); err != nil {
			s.log.Error("failed to start gateway listener", "chain", record.DestinationChain, "error", err)
		}
	}

	JSON(w, http.StatusCreated, models.EncodeTransfer(record))
}

func encodeAll(transfers []models.BridgeTransfer) []models.TransferDoc {
	docs := make([]models.TransferDoc, 0, len(transfers))
	for _, t := range transfers {
		docs = append(docs, models.EncodeTransfer(t))
	}
	return docs
}
