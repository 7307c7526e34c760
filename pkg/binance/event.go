package binance

import "strings"

// ExtractTransferHash returns the tx hash carried by a transfer event.
func ExtractTransferHash(ev *TransferEvent) (string, bool) {
	if ev == nil || ev.Data == nil || ev.Data.H == "" {
		return "", false
	}
	return ev.Data.H, true
}

// ExtractMemoTxHash returns the originating tx hash stored as the second
// colon-delimited field of the event memo, e.g. "OUT:<hash>".
func ExtractMemoTxHash(ev *TransferEvent) (string, bool) {
	if ev == nil || ev.Data == nil {
		return "", false
	}
	parts := strings.Split(ev.Data.M, ":")
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}
