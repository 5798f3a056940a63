/*
Package session implements session access and persistence orchestration.

A Manager serializes every read-modify-write of one session behind an
in-process mutex, optionally combined with a ports.DistributedLocker when
several replicas share a store. Per-session mutexes are reference counted and
dropped once no caller holds them.
*/
package session
