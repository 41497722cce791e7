package alertrender

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// clientScript removes auto-dismissed and expired alerts and wires dismiss buttons.
const clientScript = `(function(){
function remove(el){if(el&&el.parentNode){el.dispatchEvent(new CustomEvent("alert:dismissed",{bubbles:true,detail:{id:el.dataset.alertId}}));el.parentNode.removeChild(el);}}
function arm(el){
if(el.dataset.alertArmed){return;}
el.dataset.alertArmed="1";
var d=parseInt(el.dataset.autoDismiss||"",10);
if(!isNaN(d)&&d>=0){setTimeout(function(){remove(el);},d);}
if(el.dataset.expiresAt){var ms=Date.parse(el.dataset.expiresAt)-Date.now();setTimeout(function(){remove(el);},Math.max(ms,0));}
var btn=el.querySelector("[data-alert-dismiss]");
if(btn){btn.addEventListener("click",function(){remove(el);});}
}
function scan(root){(root||document).querySelectorAll("[data-alert-id]").forEach(arm);}
if(document.readyState==="loading"){document.addEventListener("DOMContentLoaded",function(){scan();});}else{scan();}
new MutationObserver(function(){scan();}).observe(document.documentElement,{childList:true,subtree:true});
})();`

// Script renders the client-side timer for auto-dismiss and expiry.
// A nonce set with templ.WithNonce is added to the script tag.
func Script() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<script`+attr("nonce", templ.GetNonce(ctx))+`>`+clientScript+`</script>`)
		return err
	})
}
