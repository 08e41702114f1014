package main

import (
	"fmt"
	"time"

	"github.com/Bren2010/leaflog/tree/accumulator"
	"github.com/sirupsen/logrus"
)

type InsertRequest struct {
	Leaf accumulator.Hash
	Resp chan<- InsertResponse
}

type InsertResponse struct {
	Root accumulator.Hash
	Size int
	Err  error
}

// inserter is a goroutine that receives insertion requests over `ch`, adds
// the requested leaf to the accumulator, and responds with the new root. It
// is the only goroutine that mutates the accumulator, which gives the store
// its at-most-one-writer guarantee.
func inserter(log *accumulator.Log, logger *logrus.Entry, ch chan InsertRequest) {
	for req := range ch {
		start := time.Now()
		acc, err := log.Insert(req.Leaf)
		insertOps.WithLabelValues(fmt.Sprint(err == nil)).Inc()
		insertDur.Observe(float64(time.Since(start).Microseconds()))

		resp := InsertResponse{Err: err}
		if err != nil {
			logger.WithError(err).Error("Failed to insert leaf.")
		} else {
			resp.Root, resp.Size = acc.Root(), acc.Size()
			logger.WithFields(logrus.Fields{
				"root": resp.Root,
				"size": resp.Size,
			}).Info("Inserted leaf.")
		}

		select {
		case req.Resp <- resp:
		default:
		}
	}
}
