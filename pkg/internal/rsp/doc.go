// Package rsp locates respiration landmarks (inhalation onsets as troughs, exhalation onsets as
// peaks) in a cleaned respiration signal.
package rsp
