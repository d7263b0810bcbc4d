package fsmsketch

// Version is the release of the fsmsketch module.
const Version = "0.3.0"
