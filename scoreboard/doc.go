// Package scoreboard stores the final results of finished game sessions in
// SQLite. Only terminal results are written; in-flight game state never
// touches disk.
package scoreboard
