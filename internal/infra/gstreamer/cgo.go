package gstreamer

/*
#cgo pkg-config: gstreamer-1.0
#include <stdlib.h>
#include <gst/gst.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/osa030/gsteasy/internal/domain/pipeline"
)

func goString(s *C.gchar) string {
	if s == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(s)))
}

func version() string {
	var major, minor, micro, nano C.guint
	C.gst_version(&major, &minor, &micro, &nano)
	return fmt.Sprintf("%d.%d.%d", major, minor, micro)
}

// setState requests a state change on the element behind obj and returns
// the full outcome, including ASYNC and NO_PREROLL.
func setState(obj unsafe.Pointer, state pipeline.State) pipeline.StateChangeReturn {
	ret := C.gst_element_set_state((*C.GstElement)(obj), toGstState(state))
	switch ret {
	case C.GST_STATE_CHANGE_SUCCESS:
		return pipeline.StateChangeSuccess
	case C.GST_STATE_CHANGE_ASYNC:
		return pipeline.StateChangeAsync
	case C.GST_STATE_CHANGE_NO_PREROLL:
		return pipeline.StateChangeNoPreroll
	default:
		return pipeline.StateChangeFailure
	}
}

func toGstState(state pipeline.State) C.GstState {
	switch state {
	case pipeline.StateNull:
		return C.GST_STATE_NULL
	case pipeline.StateReady:
		return C.GST_STATE_READY
	case pipeline.StatePaused:
		return C.GST_STATE_PAUSED
	case pipeline.StatePlaying:
		return C.GST_STATE_PLAYING
	default:
		return C.GST_STATE_VOID_PENDING
	}
}

// objectPath returns the full path of obj, e.g. /GstPipeline:p/GstFakeSink:sink.
func objectPath(obj unsafe.Pointer) string {
	path := C.gst_object_get_path_string((*C.GstObject)(obj))
	if path == nil {
		return ""
	}
	defer C.g_free(C.gpointer(unsafe.Pointer(path)))
	return goString(path)
}
