// ABOUTME: C API wrapper for the FeedSync library to enable FFI usage
// ABOUTME: Provides C-compatible functions for use in native applications

package main

// #include <stdlib.h>
import "C"
import (
	"context"
	"encoding/json"
	"unsafe"

	"feedsync/feedsynclib"
	"feedsync/infrastructure/storage/sqlite"
)

// Global client instance shared by all exported calls
var client *feedsynclib.Client

func errJSON(msg string) *C.char {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return C.CString(string(data))
}

func marshalJSON(v interface{}) *C.char {
	data, err := json.Marshal(v)
	if err != nil {
		return errJSON("failed to marshal response")
	}
	return C.CString(string(data))
}

//export FeedSyncInit
func FeedSyncInit() C.int {
	var err error
	client, err = feedsynclib.NewClient()
	if err != nil {
		return -1
	}
	return 0
}

//export FeedSyncInitWithDB
func FeedSyncInitWithDB(dbPath *C.char) C.int {
	store, err := sqlite.NewStore(C.GoString(dbPath))
	if err != nil {
		return -1
	}

	client, err = feedsynclib.NewClient(feedsynclib.WithStorage(store))
	if err != nil {
		return -1
	}
	return 0
}

//export FeedSyncClose
func FeedSyncClose() {
	client = nil
}

//export FeedSyncAddFeed
func FeedSyncAddFeed(url *C.char) *C.char {
	if client == nil {
		return errJSON("client not initialized")
	}

	feed, err := client.AddFeed(context.Background(), C.GoString(url))
	if err != nil {
		return errJSON(err.Error())
	}
	return marshalJSON(feed)
}

//export FeedSyncListFeeds
func FeedSyncListFeeds() *C.char {
	if client == nil {
		return errJSON("client not initialized")
	}

	feeds, err := client.ListFeeds(context.Background())
	if err != nil {
		return errJSON(err.Error())
	}
	return marshalJSON(feeds)
}

//export FeedSyncRemoveFeed
func FeedSyncRemoveFeed(feedID *C.char) *C.char {
	if client == nil {
		return errJSON("client not initialized")
	}

	if err := client.RemoveFeed(context.Background(), C.GoString(feedID)); err != nil {
		return errJSON(err.Error())
	}
	return C.CString(`{"ok": true}`)
}

//export FeedSyncSync
func FeedSyncSync(feedID *C.char) *C.char {
	if client == nil {
		return errJSON("client not initialized")
	}

	outcome, err := client.Sync(context.Background(), C.GoString(feedID))
	if err != nil {
		return errJSON(err.Error())
	}
	return marshalJSON(outcome)
}

//export FeedSyncSyncAll
func FeedSyncSyncAll() *C.char {
	if client == nil {
		return errJSON("client not initialized")
	}

	outcomes, err := client.SyncAll(context.Background())
	if err != nil {
		return errJSON(err.Error())
	}
	return marshalJSON(outcomes)
}

//export FeedSyncListEntries
func FeedSyncListEntries(feedID *C.char, includeUnapproved C.int) *C.char {
	if client == nil {
		return errJSON("client not initialized")
	}

	entries, err := client.ListEntries(context.Background(), C.GoString(feedID), includeUnapproved != 0)
	if err != nil {
		return errJSON(err.Error())
	}
	return marshalJSON(entries)
}

//export FeedSyncTimeline
func FeedSyncTimeline(includeUnapproved C.int) *C.char {
	if client == nil {
		return errJSON("client not initialized")
	}

	entries, err := client.Timeline(context.Background(), includeUnapproved != 0)
	if err != nil {
		return errJSON(err.Error())
	}
	return marshalJSON(entries)
}

//export FeedSyncApproveEntry
func FeedSyncApproveEntry(feedID, entryID *C.char) *C.char {
	if client == nil {
		return errJSON("client not initialized")
	}

	if err := client.ApproveEntry(context.Background(), C.GoString(feedID), C.GoString(entryID)); err != nil {
		return errJSON(err.Error())
	}
	return C.CString(`{"ok": true}`)
}

//export FeedSyncFreeString
func FeedSyncFreeString(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// Required for building as shared library
func main() {}
