//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/ellipse/internal/figure"
	"github.com/inamate/ellipse/internal/store"
)

var st *store.Store

func main() {
	st = store.New(store.NewReducer(figure.DefaultCanvas))

	// Create the editor API object
	ellipseEditor := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	ellipseEditor.Set("dispatch", js.FuncOf(dispatch))
	ellipseEditor.Set("subscribe", js.FuncOf(subscribe))

	// --- Queries (frontend ← engine) ---
	ellipseEditor.Set("getView", js.FuncOf(getView))
	ellipseEditor.Set("getHistory", js.FuncOf(getHistory))
	ellipseEditor.Set("getCanvas", js.FuncOf(getCanvas))

	// Register on global scope
	js.Global().Set("ellipseEditor", ellipseEditor)

	// Signal that WASM is ready
	js.Global().Set("ellipseWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

// dispatch takes an action as a JSON string and returns the new view as JSON.
func dispatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorValue("missing action JSON")
	}

	action, err := store.DecodeAction([]byte(args[0].String()))
	if err != nil {
		return errorValue(err.Error())
	}

	return js.ValueOf(toJSON(st.Dispatch(action)))
}

// subscribe calls the given function with the view JSON after every dispatch
// and returns a function that unsubscribes.
func subscribe(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return errorValue("missing listener function")
	}

	listener := args[0]
	unsubscribe := st.Subscribe(func(v store.View) {
		listener.Invoke(toJSON(v))
	})

	var release js.Func
	release = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		unsubscribe()
		release.Release()
		return nil
	})
	return release
}

// --- Query Handlers ---

func getView(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(toJSON(st.View()))
}

func getHistory(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(toJSON(st.State().HistoryView()))
}

func getCanvas(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(toJSON(figure.DefaultCanvas))
}

func toJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func errorValue(msg string) js.Value {
	return js.ValueOf(map[string]interface{}{"error": msg})
}
