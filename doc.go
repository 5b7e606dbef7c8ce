// Package tradepnl computes realized profit-and-loss from exported
// exchange trade and settlement ledgers, using FIFO cost-basis matching.
//
// The core functionalities include:
//   - Record Normalization: Mapping heterogeneous export schemas (legacy
//     and current contract formats, spot balance logs) onto one canonical
//     record shape, and classifying a batch as spot or contract by its
//     column signatures.
//   - Spot Matching: FIFO-matching buy and sell legs per coin, pricing
//     each leg against its same-timestamp USDT quote leg.
//   - Contract Matching: FIFO-matching OPEN and CLOSE actions per
//     contract, allocating fees and funding payments proportionally
//     across partial matches.
//   - Aggregation and Classification: Merging fills that share a close
//     event, computing quantity-weighted holding periods, and splitting
//     results into day trades and swing trades.
//
// All monetary and quantity arithmetic uses exact decimals; one upload is
// processed as a single batch that either yields a complete Analysis or a
// structured error. This package is the foundational logic for the `tpa`
// command-line tool and the HTTP analysis service in the web package.
package tradepnl
