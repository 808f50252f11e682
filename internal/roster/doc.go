// Package roster lists the pitchers dressed for a game.
//
// The roster feed (players.xml) lists every player on both teams. Lister keeps
// the ones whose position is "P", whether or not they pitched, keyed by the
// feed's player id.
package roster
