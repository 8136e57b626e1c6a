package cdp

import (
	"testing"

	"github.com/chromedp/cdproto/runtime"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/moto/internal/domain/entity"
)

type recordingSink struct {
	got []entity.Callback
}

func (s *recordingSink) Deliver(cb entity.Callback) { s.got = append(s.got, cb) }

func TestBindingCalled_IPCCarriesDocumentURL(t *testing.T) {
	sink := &recordingSink{}
	tb := &tab{id: 7, sink: sink, currentURL: "moto:config"}

	tb.bindingCalled(&runtime.EventBindingCalled{Name: ipcBinding, Payload: `{"type":"config.save"}`})
	tb.bindingCalled(&runtime.EventBindingCalled{Name: "somethingElse", Payload: "x"})

	assert.Equal(t, []entity.Callback{
		entity.IPCMessage{ID: 7, Data: []byte(`{"type":"config.save"}`), URL: "moto:config"},
	}, sink.got)
}
